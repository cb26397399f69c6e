package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shasthoai/store-backend/api/responses"
	"github.com/shasthoai/store-backend/api/validators"
	"github.com/shasthoai/store-backend/internal/catalog"
	"github.com/shasthoai/store-backend/internal/store"
	"github.com/shasthoai/store-backend/pkg/logger"
)

// Categories lists the category filter options.
func Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Categories())
	}
}

// ProductsList returns the session's visible products under its current filters.
func ProductsList(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap := session.Snapshot()
		responses.WriteSuccess(w, filtersResponse{
			SearchTerm:       snap.SearchTerm,
			SelectedCategory: snap.SelectedCategory,
			SortBy:           snap.SortBy,
			Medications:      newProductList(snap.Medications),
		})
	}
}

type filtersRequest struct {
	Search   *string `json:"search" validate:"omitempty,max=200"`
	Category *string `json:"category"`
	Sort     *string `json:"sort"`
}

// ProductsFilters updates any of search, category and sort, then returns the visible products.
func ProductsFilters(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload filtersRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.ApplyFilters(store.Filters{
			Search:   payload.Search,
			Category: payload.Category,
			Sort:     payload.Sort,
		})
		snap := session.Snapshot()
		responses.WriteSuccess(w, filtersResponse{
			SearchTerm:       snap.SearchTerm,
			SelectedCategory: snap.SelectedCategory,
			SortBy:           snap.SortBy,
			Medications:      newProductList(snap.Medications),
		})
	}
}

// ProductDetail returns one product from the full catalog.
func ProductDetail(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := session.Product(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(product))
	}
}

// ProductRelated returns products sharing the category of the given one.
func ProductRelated(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		related, err := session.Related(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductList(related))
	}
}
