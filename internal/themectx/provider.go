package themectx

import (
	"context"
	"errors"
)

// ErrNoProvider is the panic value of MustUse outside a Provider frame.
var ErrNoProvider = errors.New("themectx: no theme provider in scope")

type frameKey struct{}

// Provider makes one Store reachable from every consumer of a view tree.
type Provider struct {
	store *Store
}

func NewProvider(store *Store) *Provider {
	return &Provider{store: store}
}

// Store returns the store behind the provider, for the toggle control.
func (p *Provider) Store() *Store { return p.store }

// Frame captures a single snapshot for one render pass. Every consumer
// rendered with the returned context sees that snapshot, even if a toggle
// lands before the pass completes.
func (p *Provider) Frame(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	snap := p.store.Active()
	return context.WithValue(parent, frameKey{}, &snap)
}

// Use returns the frame's snapshot. ok is false outside a Provider frame.
func Use(ctx context.Context) (Active, bool) {
	if ctx == nil {
		return Active{}, false
	}
	snap, ok := ctx.Value(frameKey{}).(*Active)
	if !ok || snap == nil {
		return Active{}, false
	}
	return *snap, true
}

// MustUse is Use for consumers; rendering outside a Provider is an
// integration mistake and panics with ErrNoProvider.
func MustUse(ctx context.Context) Active {
	snap, ok := Use(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return snap
}
