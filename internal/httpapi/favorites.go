package httpapi

import (
	"net/http"

	"github.com/studio101-core/server/internal/catalog"
	errx "github.com/studio101-core/server/internal/core/error"
	"github.com/studio101-core/server/internal/store"
)

type favoritesView struct {
	Items []store.Favorite `json:"items"`
	Count int              `json:"count"`
	Liked bool             `json:"liked"`
}

func (h *handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, updateFavorites(r, 0, func(*store.Favorites) {}))
}

func (h *handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	h.withFavoriteProduct(w, r, func(f *store.Favorites, p catalog.Product) { f.Add(p) })
}

func (h *handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	h.withFavoriteProduct(w, r, func(f *store.Favorites, p catalog.Product) { f.Remove(p.ID) })
}

func (h *handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.withFavoriteProduct(w, r, func(f *store.Favorites, p catalog.Product) { f.Toggle(p) })
}

// withFavoriteProduct applies fn to the product named in the path. Liked in
// the response reports that product's state afterwards.
func (h *handler) withFavoriteProduct(w http.ResponseWriter, r *http.Request, fn func(*store.Favorites, catalog.Product)) {
	p, ok := h.productParam(r)
	if !ok {
		writeError(w, r, errx.NotFound(msgProductNotFound))
		return
	}
	writeJSON(w, http.StatusOK, updateFavorites(r, p.ID, func(f *store.Favorites) { fn(f, p) }))
}

func updateFavorites(r *http.Request, productID int, fn func(*store.Favorites)) favoritesView {
	var view favoritesView
	sessionFrom(r).WithFavorites(func(f *store.Favorites) {
		fn(f)
		view = favoritesView{Items: f.Items(), Count: f.Count(), Liked: productID != 0 && f.Contains(productID)}
	})
	return view
}
