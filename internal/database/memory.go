package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"catalog-orders/internal/domain"
)

// memoryGateway holds documents in process. It mirrors the postgres gateway:
// documents round-trip through JSON and carry their id under "_id".
type memoryGateway struct {
	mu          sync.RWMutex
	collections map[Collection][]map[string]any
}

// NewMemoryGateway returns an empty in-process Gateway.
func NewMemoryGateway() Gateway {
	return &memoryGateway{collections: make(map[Collection][]map[string]any)}
}

func (g *memoryGateway) Insert(ctx context.Context, coll Collection, doc any) (domain.ID, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return domain.NilID, fmt.Errorf("failed to encode %s document: %w", coll, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.NilID, fmt.Errorf("%s document is not an object: %w", coll, err)
	}

	id := domain.NewID()
	fields["_id"] = id.String()

	g.mu.Lock()
	defer g.mu.Unlock()

	docs := append(g.collections[coll], fields)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i]["_id"].(string) < docs[j]["_id"].(string)
	})
	g.collections[coll] = docs

	return id, nil
}

func (g *memoryGateway) Count(ctx context.Context, coll Collection, filter Filter) (int64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var n int64
	for _, doc := range g.collections[coll] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (g *memoryGateway) Find(ctx context.Context, coll Collection, filter Filter, page domain.Page, out any) error {
	g.mu.RLock()
	matched := []map[string]any{}
	skipped := 0
	for _, doc := range g.collections[coll] {
		if len(matched) == page.Limit {
			break
		}
		if !matches(doc, filter) {
			continue
		}
		if skipped < page.Offset {
			skipped++
			continue
		}
		matched = append(matched, doc)
	}
	body, err := json.Marshal(matched)
	g.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", coll, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}
	return nil
}

func (g *memoryGateway) FindByID(ctx context.Context, coll Collection, id domain.ID, out any) error {
	g.mu.RLock()
	var found map[string]any
	for _, doc := range g.collections[coll] {
		if doc["_id"] == id.String() {
			found = doc
			break
		}
	}
	body, err := json.Marshal(found)
	g.mu.RUnlock()

	if found == nil {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", coll, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}
	return nil
}

func (g *memoryGateway) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (g *memoryGateway) Close(ctx context.Context) error {
	return nil
}

func matches(doc map[string]any, filter Filter) bool {
	for _, c := range filter {
		switch c.Op {
		case OpEq:
			s, ok := doc[c.Field].(string)
			if !ok || s != c.Value {
				return false
			}
		case OpContainsFold:
			s, ok := doc[c.Field].(string)
			if !ok || !strings.Contains(strings.ToLower(s), strings.ToLower(c.Value)) {
				return false
			}
		case OpAnyEq:
			if !anyElementEquals(doc[c.Field], c.Sub, c.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func anyElementEquals(field any, sub, value string) bool {
	elems, ok := field.([]any)
	if !ok {
		return false
	}
	for _, e := range elems {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if s, ok := m[sub].(string); ok && s == value {
			return true
		}
	}
	return false
}
