// Package tenantctx binds the current tenant identifier to one request's
// execution context. A slot is acquired at request entry, written once by the
// authentication stage, read by the subscription gate and entitlement checks,
// and released unconditionally when the request ends. Slots are pooled and
// reused across requests, so release must clear them and invalidate any
// outstanding references before the slot is handed out again.
package tenantctx

import (
	"context"
	"errors"
	"sync"
)

// Common errors
var (
	// ErrInvalidTenant is returned when an empty tenant id is bound
	ErrInvalidTenant = errors.New("tenant id is empty")
	// ErrNotAcquired is returned when the context carries no tenant slot
	ErrNotAcquired = errors.New("no tenant slot acquired for this context")
)

// slot is the per-request mutable cell. The generation counter is bumped on
// every release so that a context captured before the release can never read
// a value written by a later request reusing the same slot.
type slot struct {
	mu       sync.Mutex
	gen      uint64
	tenantID string
	bound    bool
}

var slotPool = sync.Pool{
	New: func() any { return &slot{} },
}

type ctxKey struct{}

// handle is what actually lives in the context: a slot reference pinned to
// the generation it was acquired under.
type handle struct {
	s   *slot
	gen uint64
}

// Scope represents one request's acquisition of a tenant slot. Release must
// be called exactly once on every exit path; calling it again is a no-op.
type Scope struct {
	s        *slot
	gen      uint64
	released bool
	mu       sync.Mutex
}

// Acquire attaches a fresh tenant slot to the context and returns the scope
// that owns it. The caller must arrange for Release to run on all exit paths,
// typically via defer at the outermost request wrapper.
func Acquire(ctx context.Context) (context.Context, *Scope) {
	s := slotPool.Get().(*slot)

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	ctx = context.WithValue(ctx, ctxKey{}, handle{s: s, gen: gen})
	return ctx, &Scope{s: s, gen: gen}
}

// Release clears the slot and returns it to the pool. Safe to call more than
// once; only the first call has effect.
func (sc *Scope) Release() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.released {
		return
	}
	sc.released = true

	sc.s.mu.Lock()
	sc.s.tenantID = ""
	sc.s.bound = false
	sc.s.gen++ // invalidate every handle issued under this acquisition
	sc.s.mu.Unlock()

	slotPool.Put(sc.s)
	sc.s = nil
}

// Bind stores the tenant id in the context's slot. An empty id fails with
// ErrInvalidTenant. Rebinding overwrites; only request-entry middleware
// should rely on that.
func Bind(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrInvalidTenant
	}
	h, ok := ctx.Value(ctxKey{}).(handle)
	if !ok {
		return ErrNotAcquired
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if h.s.gen != h.gen {
		return ErrNotAcquired
	}
	h.s.tenantID = tenantID
	h.s.bound = true
	return nil
}

// Current returns the tenant id bound to the calling context, and whether one
// is bound. A released or recycled slot reads as unbound.
func Current(ctx context.Context) (string, bool) {
	h, ok := ctx.Value(ctxKey{}).(handle)
	if !ok {
		return "", false
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if h.s.gen != h.gen || !h.s.bound {
		return "", false
	}
	return h.s.tenantID, true
}

// IsBound reports whether a tenant is bound to the calling context
func IsBound(ctx context.Context) bool {
	_, ok := Current(ctx)
	return ok
}
