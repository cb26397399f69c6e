package store

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/shasthoai/store-backend/internal/cart"
	"github.com/shasthoai/store-backend/internal/catalog"
	pkgerrors "github.com/shasthoai/store-backend/pkg/errors"
	"github.com/shasthoai/store-backend/pkg/kv"
	"github.com/shasthoai/store-backend/pkg/logger"
	"github.com/shasthoai/store-backend/pkg/metrics"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSessionID reports whether id can name a session. Empty is the default session.
func ValidSessionID(id string) bool {
	return id == "" || sessionIDPattern.MatchString(id)
}

// Options wires a Registry.
type Options struct {
	Catalog      *catalog.Catalog
	Store        kv.Store
	Namespace    string
	Pricing      cart.Pricing
	RelatedLimit int
	Logger       *logger.Logger
	Metrics      *metrics.StoreMetrics
}

// Registry hands out sessions by id, hydrating each cart on first use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
	logg     *logger.Logger
	now      func() time.Time
}

// NewRegistry validates opts and returns an empty registry.
func NewRegistry(opts Options) (*Registry, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("namespace required")
	}
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = catalog.DefaultRelatedLimit
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Registry{
		sessions: make(map[string]*Session),
		opts:     opts,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Namespace returns the cart namespace for a session id.
func (r *Registry) Namespace(sessionID string) string {
	if sessionID == "" {
		return r.opts.Namespace
	}
	return r.opts.Namespace + ":" + sessionID
}

// Session returns the session for id, creating and hydrating it when needed.
func (r *Registry) Session(ctx context.Context, id string) (*Session, error) {
	if !ValidSessionID(id) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid session id").
			WithDetails(map[string]any{"session_id": id})
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.touch(now)
		return s, nil
	}

	manager, err := cart.NewManager(ctx, cart.Options{
		Namespace: r.Namespace(id),
		Store:     r.opts.Store,
		Logger:    r.logg,
		Metrics:   r.opts.Metrics,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}
	s := &Session{
		id:           id,
		view:         catalog.NewView(r.opts.Catalog),
		cart:         manager,
		pricing:      r.opts.Pricing,
		relatedLimit: r.opts.RelatedLimit,
		lastSeen:     now,
	}
	r.sessions[id] = s
	r.logg.Debug(r.logg.WithSessionID(ctx, id), "session opened")
	return s, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Prune drops sessions idle for at least idle. Carts remain in the backend and
// are hydrated again on the next request.
func (r *Registry) Prune(idle time.Duration) int {
	if idle <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	dropped := 0
	for id, s := range r.sessions {
		if s.idleSince(now) >= idle {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RunPruner prunes on every tick until ctx is done.
func (r *Registry) RunPruner(ctx context.Context, idle, every time.Duration) {
	if idle <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Prune(idle); n > 0 {
				r.logg.Info(r.logg.WithField(ctx, "sessions_pruned", n), "pruned idle sessions")
			}
		}
	}
}
