package controllers

import (
	"context"
	"net/http"

	"github.com/shasthoai/store-backend/api/middleware"
	"github.com/shasthoai/store-backend/internal/store"
	pkgerrors "github.com/shasthoai/store-backend/pkg/errors"
)

// SessionProvider resolves shopper sessions.
type SessionProvider interface {
	Session(ctx context.Context, id string) (*store.Session, error)
}

func sessionFor(r *http.Request, sessions SessionProvider) (*store.Session, error) {
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session registry unavailable")
	}
	return sessions.Session(r.Context(), middleware.SessionIDFromContext(r.Context()))
}
