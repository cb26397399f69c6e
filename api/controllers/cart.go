package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shasthoai/store-backend/api/responses"
	"github.com/shasthoai/store-backend/api/validators"
	"github.com/shasthoai/store-backend/pkg/logger"
)

// CartGet returns the session cart with its totals.
func CartGet(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(session.Cart()))
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"omitempty,min=1,max=10000"`
}

// CartAddItem adds a catalog product to the cart, one unit unless quantity is given.
func CartAddItem(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		view, err := session.AddToCart(r.Context(), payload.ProductID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(view))
	}
}

type updateItemRequest struct {
	Delta *int `json:"delta" validate:"required,min=-10000,max=10000"`
}

// CartUpdateItem shifts an entry's quantity by delta. Unknown products leave the cart unchanged.
func CartUpdateItem(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view := session.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), *payload.Delta)
		responses.WriteSuccess(w, newCartResponse(view))
	}
}

// CartRemoveItem drops an entry from the cart.
func CartRemoveItem(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		view := session.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, newCartResponse(view))
	}
}

// CartSummary returns the priced order summary.
func CartSummary(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSummaryResponse(session.Summary()))
	}
}
