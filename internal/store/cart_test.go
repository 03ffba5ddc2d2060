package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio101-core/server/internal/catalog"
	"github.com/studio101-core/server/internal/store"
)

func product(t *testing.T, id int) catalog.Product {
	t.Helper()
	p, ok := catalog.Default().ByID(id)
	require.True(t, ok, "product %d", id)
	return p
}

func TestCartAddMergesSameProduct(t *testing.T) {
	for _, n := range []int{1, 2, 5, 17} {
		c := store.NewCart()
		p := product(t, 1)

		results := make([]store.AddResult, 0, n)
		for i := 0; i < n; i++ {
			results = append(results, c.Add(p))
		}

		require.Equal(t, 1, c.Len())
		assert.Equal(t, n, c.Lines()[0].Quantity)
		assert.Equal(t, store.Created, results[0])
		for _, r := range results[1:] {
			assert.Equal(t, store.Merged, r)
		}
	}
}

func TestCartLineIDsAreUnique(t *testing.T) {
	c := store.NewCart()
	c.Add(product(t, 1))
	c.Add(product(t, 2))
	c.Add(product(t, 3))

	seen := map[string]bool{}
	for _, l := range c.Lines() {
		assert.NotEmpty(t, l.ID)
		assert.False(t, seen[l.ID], "duplicate line id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestCartRemoveProduct(t *testing.T) {
	c := store.NewCart()
	c.Add(product(t, 1))
	c.Add(product(t, 2))

	c.RemoveProduct(1)
	assert.False(t, c.Contains(1))
	assert.True(t, c.Contains(2))

	before := c.Lines()
	c.RemoveProduct(1)
	c.RemoveProduct(999)
	assert.Equal(t, before, c.Lines())
}

func TestCartRemoveLine(t *testing.T) {
	c := store.NewCart()
	c.Add(product(t, 1))
	c.Add(product(t, 2))
	lineID := c.Lines()[0].ID

	c.Remove(lineID)
	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Contains(1))

	c.Remove("missing")
	assert.Equal(t, 1, c.Len())
}

func TestCartSetQuantityFloor(t *testing.T) {
	c := store.NewCart()
	c.Add(product(t, 4))
	lineID := c.Lines()[0].ID

	c.SetQuantity(lineID, 3)
	require.Equal(t, 3, c.Lines()[0].Quantity)

	for _, q := range []int{0, -1, -100} {
		c.SetQuantity(lineID, q)
		assert.Equal(t, 3, c.Lines()[0].Quantity, "quantity %d", q)
	}

	c.SetQuantity("missing", 7)
	assert.Equal(t, 3, c.Lines()[0].Quantity)
}

func TestCartQuantityCeiling(t *testing.T) {
	c := store.NewCart()
	mat := product(t, 1)
	c.Add(mat)
	lineID := c.Lines()[0].ID

	c.SetQuantity(lineID, store.MaxQuantity)
	require.Equal(t, store.MaxQuantity, c.Lines()[0].Quantity)

	for _, q := range []int{store.MaxQuantity + 1, 207266787345052} {
		c.SetQuantity(lineID, q)
		assert.Equal(t, store.MaxQuantity, c.Lines()[0].Quantity, "quantity %d", q)
	}

	c.Increment(lineID)
	assert.Equal(t, store.MaxQuantity, c.Lines()[0].Quantity)
	assert.Equal(t, store.Merged, c.Add(mat))
	assert.Equal(t, store.MaxQuantity, c.Lines()[0].Quantity)
	assert.Equal(t, int64(store.MaxQuantity*89000), c.TotalAmount())
}

func TestCartIncrementDecrement(t *testing.T) {
	c := store.NewCart()
	c.Add(product(t, 5))
	lineID := c.Lines()[0].ID

	c.Decrement(lineID)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
	assert.Equal(t, 1, c.Len())

	c.Increment(lineID)
	c.Increment(lineID)
	assert.Equal(t, 3, c.Lines()[0].Quantity)

	c.Decrement(lineID)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestCartTotals(t *testing.T) {
	c := store.NewCart()
	mat := product(t, 1)   // 89,000원
	shelf := product(t, 2) // 49,000원

	c.Add(mat)
	c.Add(mat)
	c.Add(shelf)
	c.Increment(c.Lines()[1].ID)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.TotalCount())
	assert.Equal(t, int64(2*89000+2*49000), c.TotalAmount())
	assert.Equal(t, int64(178000), c.Lines()[0].Subtotal())

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.TotalCount())
	assert.Zero(t, c.TotalAmount())
}

func TestCartLinesIsCopy(t *testing.T) {
	c := store.NewCart()
	c.Add(product(t, 1))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestCartVisibility(t *testing.T) {
	c := store.NewCart()
	assert.False(t, c.IsOpen())
	c.Open()
	assert.True(t, c.IsOpen())
	c.Close()
	assert.False(t, c.IsOpen())
}

func TestAddResultString(t *testing.T) {
	assert.Equal(t, "created", store.Created.String())
	assert.Equal(t, "merged", store.Merged.String())
	assert.Equal(t, "unknown", store.AddResult(0).String())
}
