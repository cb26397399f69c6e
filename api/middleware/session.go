package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shasthoai/store-backend/api/responses"
	"github.com/shasthoai/store-backend/internal/store"
	pkgerrors "github.com/shasthoai/store-backend/pkg/errors"
	"github.com/shasthoai/store-backend/pkg/logger"
)

// Session resolves the shopper session id from X-Session-Id, minting one when
// absent, and echoes it on the response.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			if !store.ValidSessionID(sessionID) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
					WithDetails(map[string]any{"header": SessionHeader}))
				return
			}

			w.Header().Set(SessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
