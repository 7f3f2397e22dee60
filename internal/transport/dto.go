package transport

import (
	"catalog-orders/internal/domain"
	"catalog-orders/internal/service"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name  string        `json:"name" validate:"required"`
	Price *float64      `json:"price" validate:"required,gte=0"`
	Sizes []SizeRequest `json:"sizes" validate:"required,dive"`
}

// SizeRequest is one size entry of a product
type SizeRequest struct {
	Size     *string `json:"size" validate:"required"`
	Quantity *int    `json:"quantity" validate:"required"`
}

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	UserID string             `json:"userId" validate:"required"`
	Items  []OrderItemRequest `json:"items" validate:"required,dive"`
}

// OrderItemRequest references a product by id
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Qty       int    `json:"qty" validate:"gt=0"`
}

// CreatedResponse carries the id of a stored document
type CreatedResponse struct {
	ID string `json:"id"`
}

// MessageResponse is the liveness body
type MessageResponse struct {
	Message string `json:"message"`
}

// PageResponse describes the neighbouring pages of a listing
type PageResponse struct {
	Next     *int `json:"next"`
	Limit    int  `json:"limit"`
	Previous *int `json:"previous"`
}

// ProductSummary is the listing view of a product
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ProductListResponse represents a page of products
type ProductListResponse struct {
	Data []ProductSummary `json:"data"`
	Page PageResponse     `json:"page"`
}

// ProductDetails identifies the product of an order item
type ProductDetails struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

// OrderItemResponse is one resolved line of an order
type OrderItemResponse struct {
	ProductDetails ProductDetails `json:"productDetails"`
	Qty            int            `json:"qty"`
}

// OrderResponse is an order with its total
type OrderResponse struct {
	ID    string              `json:"id"`
	Items []OrderItemResponse `json:"items"`
	Total float64             `json:"total"`
}

// OrderListResponse represents a page of a user's orders
type OrderListResponse struct {
	Data []OrderResponse `json:"data"`
	Page PageResponse    `json:"page"`
}

func toPageResponse(info domain.PageInfo) PageResponse {
	return PageResponse{
		Next:     info.Next,
		Limit:    info.Limit,
		Previous: info.Previous,
	}
}

func toProductListResponse(page *service.ProductPage) ProductListResponse {
	data := make([]ProductSummary, 0, len(page.Products))
	for _, p := range page.Products {
		data = append(data, ProductSummary{
			ID:    p.ID.String(),
			Name:  p.Name,
			Price: p.Price,
		})
	}
	return ProductListResponse{Data: data, Page: toPageResponse(page.Page)}
}

func toOrderListResponse(page *service.OrderPage) OrderListResponse {
	data := make([]OrderResponse, 0, len(page.Orders))
	for _, o := range page.Orders {
		items := make([]OrderItemResponse, 0, len(o.Items))
		for _, line := range o.Items {
			name := line.ProductName
			items = append(items, OrderItemResponse{
				ProductDetails: ProductDetails{ID: line.ProductID.String(), Name: &name},
				Qty:            line.Qty,
			})
		}
		data = append(data, OrderResponse{
			ID:    o.ID.String(),
			Items: items,
			Total: o.Total,
		})
	}
	return OrderListResponse{Data: data, Page: toPageResponse(page.Page)}
}
