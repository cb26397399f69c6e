package controllers

import (
	"net/http"

	"github.com/shasthoai/store-backend/api/responses"
	"github.com/shasthoai/store-backend/pkg/logger"
)

// StoreSnapshot returns the whole storefront state for the session.
func StoreSnapshot(sessions SessionProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFor(r, sessions)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSnapshotResponse(session.Snapshot()))
	}
}
