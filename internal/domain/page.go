package domain

import (
	"errors"
	"fmt"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ErrInvalidPage is returned when limit or offset fall outside their bounds.
var ErrInvalidPage = errors.New("invalid page")

// Page selects a window of an ordered result set.
type Page struct {
	Limit  int
	Offset int
}

// DefaultPage returns the first page with the default limit.
func DefaultPage() Page {
	return Page{Limit: DefaultLimit, Offset: 0}
}

// Validate checks limit is within [1, MaxLimit] and offset is not negative.
func (p Page) Validate() error {
	if p.Limit < 1 || p.Limit > MaxLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", ErrInvalidPage, MaxLimit, p.Limit)
	}
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must be greater than or equal to 0, got %d", ErrInvalidPage, p.Offset)
	}
	return nil
}

// PageInfo describes the neighbours of a page.
type PageInfo struct {
	Next     *int
	Limit    int
	Previous *int
}

// Info computes the neighbouring offsets of p given the total number of
// matching documents.
func (p Page) Info(total int64) PageInfo {
	info := PageInfo{Limit: p.Limit}
	if next := p.Offset + p.Limit; int64(next) < total {
		info.Next = &next
	}
	if prev := p.Offset - p.Limit; prev >= 0 {
		info.Previous = &prev
	}
	return info
}
