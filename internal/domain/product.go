package domain

// Product represents a product in the catalog
type Product struct {
	ID    ID
	Name  string
	Price float64
	Sizes []ProductSize
}

// ProductSize is the stock held for one size of a product
type ProductSize struct {
	Size     string
	Quantity int
}

// ProductFilter narrows a product listing. Nil fields are not applied.
type ProductFilter struct {
	// Name matches products whose name contains the text, ignoring case.
	Name *string
	// Size matches products having at least one size equal to the text.
	Size *string
}
