package database

// Operator selects how a condition compares a field.
type Operator int

const (
	// OpEq matches a scalar field equal to the value.
	OpEq Operator = iota
	// OpContainsFold matches a text field containing the value as a literal,
	// case-insensitive substring.
	OpContainsFold
	// OpAnyEq matches an array field having at least one element whose Sub
	// field equals the value.
	OpAnyEq
)

// Condition is a single predicate over a document field.
type Condition struct {
	Field string
	Sub   string
	Op    Operator
	Value string
}

// Filter is a conjunction of conditions. An empty filter matches everything.
type Filter []Condition

func Eq(field, value string) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

func ContainsFold(field, text string) Condition {
	return Condition{Field: field, Op: OpContainsFold, Value: text}
}

func AnyEq(field, sub, value string) Condition {
	return Condition{Field: field, Sub: sub, Op: OpAnyEq, Value: value}
}
