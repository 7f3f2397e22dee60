package database

import (
	"context"
	"errors"
	"testing"

	"catalog-orders/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testSize struct {
	Size     string `bson:"size" json:"size"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type testProduct struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Sizes []testSize         `bson:"sizes" json:"sizes"`
}

type testOrder struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID string             `bson:"userId" json:"userId"`
}

// runGatewaySuite checks the behaviour every Gateway implementation shares.
// gw must start empty.
func runGatewaySuite(t *testing.T, gw Gateway) {
	ctx := context.Background()

	seed := []testProduct{
		{Name: "Red Shirt", Price: 10, Sizes: []testSize{{Size: "M", Quantity: 5}}},
		{Name: "red shoes", Price: 25, Sizes: []testSize{{Size: "L", Quantity: 1}, {Size: "XL", Quantity: 2}}},
		{Name: "Blue 100% cotton_tee", Price: 7.5, Sizes: []testSize{}},
	}

	ids := make([]domain.ID, 0, len(seed))
	for _, p := range seed {
		id, err := gw.Insert(ctx, Products, p)
		require.NoError(t, err)
		require.False(t, id.IsZero())
		ids = append(ids, id)
	}

	t.Run("find by id", func(t *testing.T) {
		var got testProduct
		require.NoError(t, gw.FindByID(ctx, Products, ids[1], &got))
		assert.Equal(t, ids[1], domain.ID(got.ID))
		assert.Equal(t, "red shoes", got.Name)
		assert.Equal(t, 25.0, got.Price)
		assert.Len(t, got.Sizes, 2)
	})

	t.Run("find by id missing", func(t *testing.T) {
		var got testProduct
		err := gw.FindByID(ctx, Products, domain.NewID(), &got)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("find sorts by id", func(t *testing.T) {
		var got []testProduct
		require.NoError(t, gw.Find(ctx, Products, nil, domain.Page{Limit: 10}, &got))
		require.Len(t, got, 3)
		for i := range got {
			assert.Equal(t, ids[i], domain.ID(got[i].ID))
		}
	})

	t.Run("find windows by skip and limit", func(t *testing.T) {
		var got []testProduct
		require.NoError(t, gw.Find(ctx, Products, nil, domain.Page{Limit: 1, Offset: 1}, &got))
		require.Len(t, got, 1)
		assert.Equal(t, ids[1], domain.ID(got[0].ID))
	})

	t.Run("contains fold", func(t *testing.T) {
		n, err := gw.Count(ctx, Products, Filter{ContainsFold("name", "RED")})
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		n, err = gw.Count(ctx, Products, Filter{ContainsFold("name", "shirt")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("contains fold is literal", func(t *testing.T) {
		for _, text := range []string{"100%", "n_t", "cotton_tee"} {
			n, err := gw.Count(ctx, Products, Filter{ContainsFold("name", text)})
			require.NoError(t, err)
			assert.Equal(t, int64(1), n, text)
		}

		for _, text := range []string{"r.d", "Blue.*tee", "%", "_"} {
			var got []testProduct
			require.NoError(t, gw.Find(ctx, Products, Filter{ContainsFold("name", text)}, domain.Page{Limit: 10}, &got))
			for _, p := range got {
				assert.Contains(t, p.Name, text)
			}
		}
	})

	t.Run("any element equals", func(t *testing.T) {
		n, err := gw.Count(ctx, Products, Filter{AnyEq("sizes", "size", "M")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = gw.Count(ctx, Products, Filter{AnyEq("sizes", "size", "m")})
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)

		n, err = gw.Count(ctx, Products, Filter{AnyEq("sizes", "size", "XL")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("conditions combine with and", func(t *testing.T) {
		var got []testProduct
		f := Filter{ContainsFold("name", "red"), AnyEq("sizes", "size", "L")}
		require.NoError(t, gw.Find(ctx, Products, f, domain.Page{Limit: 10}, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "red shoes", got[0].Name)
	})

	t.Run("equality on other collection", func(t *testing.T) {
		_, err := gw.Insert(ctx, Orders, testOrder{UserID: "alice"})
		require.NoError(t, err)
		_, err = gw.Insert(ctx, Orders, testOrder{UserID: "bob"})
		require.NoError(t, err)

		var got []testOrder
		require.NoError(t, gw.Find(ctx, Orders, Filter{Eq("userId", "alice")}, domain.Page{Limit: 10}, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "alice", got[0].UserID)

		n, err := gw.Count(ctx, Orders, Filter{Eq("userId", "carol")})
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("empty page decodes to empty slice", func(t *testing.T) {
		var got []testOrder
		require.NoError(t, gw.Find(ctx, Orders, Filter{Eq("userId", "carol")}, domain.Page{Limit: 10}, &got))
		assert.Empty(t, got)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, gw.Ping(ctx))
	})
}
