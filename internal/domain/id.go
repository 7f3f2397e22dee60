package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when an identifier cannot be parsed from its text form.
var ErrInvalidID = errors.New("invalid identifier")

// ID identifies a stored document. It is generated on insert and rendered
// externally as a 24 character hex string.
type ID primitive.ObjectID

// NilID is the zero identifier.
var NilID ID

// NewID generates a fresh identifier. Identifiers generated later sort after
// earlier ones.
func NewID() ID {
	return ID(primitive.NewObjectID())
}

// ParseID parses the external text form of an identifier.
func ParseID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(oid), nil
}

// String returns the external text form.
func (id ID) String() string {
	return primitive.ObjectID(id).Hex()
}

// ObjectID returns the underlying BSON object id.
func (id ID) ObjectID() primitive.ObjectID {
	return primitive.ObjectID(id)
}

// IsZero reports whether id is NilID, which no stored document carries.
func (id ID) IsZero() bool {
	return primitive.ObjectID(id).IsZero()
}
