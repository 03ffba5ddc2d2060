package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studio101-core/server/internal/catalog"
)

func ids(ps []catalog.Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := catalog.New([]catalog.Product{
		{ID: 1, Name: "a"},
		{ID: 1, Name: "b"},
	})
	require.Error(t, err)

	_, err = catalog.New([]catalog.Product{{ID: 0, Name: "zero"}})
	require.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	c := catalog.Default()
	require.Equal(t, 24, c.Len())

	p, ok := c.ByID(10)
	require.True(t, ok)
	assert.Equal(t, "모니터 암 (듀얼 모니터 지원)", p.Name)
	assert.Equal(t, int64(129000), p.PriceValue())

	_, ok = c.ByID(999)
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	c := catalog.Default()
	all := c.All()
	all[0].Name = "mutated"

	p, _ := c.ByID(1)
	assert.NotEqual(t, "mutated", p.Name)
}

func TestSearch(t *testing.T) {
	c := catalog.Default()

	tests := []struct {
		name  string
		query string
		limit int
		want  []int
	}{
		{name: "DeskMatByNameDescriptionOrLabel", query: "데스크 매트", want: []int{1, 7, 23}},
		{name: "CategoryLabel", query: "조명", want: []int{4, 9, 13, 14, 24}},
		{name: "CaseInsensitive", query: "USB", want: []int{8, 15, 18, 20}},
		{name: "Limit", query: "수납", limit: 2, want: []int{3, 5}},
		{name: "NoMatch", query: "냉장고", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Search(tt.query, tt.limit)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearchShowAll(t *testing.T) {
	c := catalog.Default()
	all := ids(c.All())

	for _, q := range []string{"", "  ", "전체 상품", "모든", "아무거나", "상품", "제품", "보여줘"} {
		assert.Equal(t, all, ids(c.Search(q, 0)), "query %q", q)
	}

	assert.Equal(t, []int{1, 2, 3}, ids(c.Search("전체", 3)))
}

func TestWithShowAllTerms(t *testing.T) {
	c, err := catalog.New(catalog.DefaultProducts, catalog.WithShowAllTerms([]string{"everything"}, nil))
	require.NoError(t, err)

	assert.Len(t, c.Search("show everything", 0), 24)
	// no longer a show-all word, so it matches by text like any other query
	assert.Equal(t, []int{23}, ids(c.Search("전체", 0)))
}

func TestAt(t *testing.T) {
	c := catalog.Default()

	p, ok := c.At(3)
	require.True(t, ok)
	assert.Equal(t, 3, p.ID)

	_, ok = c.At(0)
	assert.False(t, ok)
	_, ok = c.At(25)
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, []int{1, 7, 23}, ids(c.ByCategory(catalog.CategoryDeskMats)))
	assert.Len(t, c.ByCategory(catalog.CategoryAll), 24)
	assert.Empty(t, c.ByCategory(catalog.Category("unknown")))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "수납/정리", catalog.CategoryStorage.Label())
	assert.Equal(t, "mystery", catalog.Category("mystery").Label())
	assert.True(t, catalog.CategoryAll.Valid())
	assert.False(t, catalog.Category("mystery").Valid())
}
