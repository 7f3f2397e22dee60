package transport

import (
	"net/http"

	"catalog-orders/internal/domain"
	"catalog-orders/internal/middleware"
	"catalog-orders/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))
		respondWithDecodeError(w, err)
		return
	}

	sizes := make([]domain.ProductSize, 0, len(req.Sizes))
	for _, s := range req.Sizes {
		sizes = append(sizes, domain.ProductSize{Size: *s.Size, Quantity: *s.Quantity})
	}

	id, err := h.productService.Create(r.Context(), req.Name, *req.Price, sizes)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Product created", zap.String("product_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, CreatedResponse{ID: id.String()})
}

// List handles filtered, paginated product listings
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, validationErrors := parsePage(query)
	if len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	filter := domain.ProductFilter{
		Name: optionalQuery(query, "name"),
		Size: optionalQuery(query, "size"),
	}

	result, err := h.productService.List(r.Context(), filter, page)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductListResponse(result))
}
