package domain

// Order is a user's order. Items reference products by id; the references
// are not checked when the order is stored.
type Order struct {
	ID     ID
	UserID string
	Items  []OrderItem
}

// OrderItem is one line of an order
type OrderItem struct {
	ProductID ID
	Qty       int
}
