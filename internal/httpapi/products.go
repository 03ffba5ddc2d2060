package httpapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studio101-core/server/internal/catalog"
	errx "github.com/studio101-core/server/internal/core/error"
)

const defaultBestsellers = 10

// listProducts searches the catalog; q, category and limit are all optional.
func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := optionalInt(q.Get("limit"))
	if err != nil || limit < 0 {
		writeError(w, r, errx.BadRequest("limit은 0 이상의 숫자여야 합니다."))
		return
	}
	category := catalog.Category(strings.TrimSpace(q.Get("category")))
	if category != "" && !category.Valid() {
		writeError(w, r, errx.BadRequest("알 수 없는 카테고리입니다."))
		return
	}

	var out []catalog.Product
	for _, p := range h.catalog.Search(q.Get("q"), 0) {
		if category == "" || category == catalog.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := h.productParam(r)
	if !ok {
		writeError(w, r, errx.NotFound(msgProductNotFound))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type bestseller struct {
	catalog.Product
	Sold int `json:"sold"`
}

// getBestsellers ranks products by units sold; ties keep catalog order.
func (h *handler) getBestsellers(w http.ResponseWriter, r *http.Request) {
	limit, err := optionalInt(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		writeError(w, r, errx.BadRequest("limit은 0 이상의 숫자여야 합니다."))
		return
	}
	if limit == 0 {
		limit = defaultBestsellers
	}

	counts, err := h.history.PurchaseCounts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := []bestseller{}
	for _, p := range h.catalog.All() {
		if n := counts[p.ID]; n > 0 {
			out = append(out, bestseller{Product: p, Sold: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sold > out[j].Sold })
	if len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) productParam(r *http.Request) (catalog.Product, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		return catalog.Product{}, false
	}
	return h.catalog.ByID(id)
}

func optionalInt(raw string) (int, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
