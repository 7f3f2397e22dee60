package transport

import (
	"net/http"
	"strconv"

	"catalog-orders/internal/domain"
	"catalog-orders/internal/middleware"
	"catalog-orders/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for orders
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{user_id}", h.ListForUser)
	})
}

// Create handles order creation. Referenced products are not checked.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))
		respondWithDecodeError(w, err)
		return
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	var validationErrors []middleware.ValidationError
	for i, item := range req.Items {
		productID, err := domain.ParseID(item.ProductID)
		if err != nil {
			validationErrors = append(validationErrors, middleware.ValidationError{
				Loc:  []string{"body", "items", strconv.Itoa(i), "productId"},
				Msg:  "Input should be a 24 character hex string",
				Type: "value_error",
			})
			continue
		}
		items = append(items, domain.OrderItem{ProductID: productID, Qty: item.Qty})
	}
	if len(validationErrors) > 0 {
		h.logger.Debug("Order references malformed product ids", zap.Int("count", len(validationErrors)))
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	id, err := h.orderService.Create(r.Context(), req.UserID, items)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Order created",
		zap.String("order_id", id.String()),
		zap.String("user_id", req.UserID),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, CreatedResponse{ID: id.String()})
}

// ListForUser handles paginated listings of a user's orders
func (h *OrderHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	page, validationErrors := parsePage(r.URL.Query())
	if len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	result, err := h.orderService.ListForUser(r.Context(), userID, page)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toOrderListResponse(result))
}
