package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wealth-projections/internal/input"
	"wealth-projections/internal/model"
	"wealth-projections/internal/present"
	"wealth-projections/internal/projection"
)

// ErrNoView is returned when an input is declined and there is no earlier view to keep.
var ErrNoView = errors.New("no valid projection yet")

type key struct {
	session string
	kind    model.Kind
}

type entry struct {
	view      present.View
	expiresAt time.Time
}

// Board keeps the last valid view per (session, calculator). A declined input
// leaves the stored view in place and hands it back marked stale, so a half-typed
// value never blanks a chart.
//
// Entries expire ttl after their last use.
type Board struct {
	mu    sync.RWMutex
	store map[key]*entry
	ttl   time.Duration

	engine   *projection.Engine
	baseYear int
	now      func() time.Time
}

func NewBoard(engine *projection.Engine, baseYear int, ttl time.Duration) *Board {
	if engine == nil {
		engine = projection.New()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Board{
		store:    make(map[key]*entry),
		ttl:      ttl,
		engine:   engine,
		baseYear: baseYear,
		now:      time.Now,
	}
}

// Apply recomputes one calculator from raw fields.
func (b *Board) Apply(sessionID string, kind model.Kind, fields input.Fields) (present.View, error) {
	req, err := input.Build(kind, fields)
	if err != nil {
		return present.View{}, err
	}
	k := key{session: sessionID, kind: kind}

	res, err := b.engine.Run(req)
	if errors.Is(err, projection.ErrNotComputable) {
		b.mu.Lock()
		defer b.mu.Unlock()
		e, ok := b.store[k]
		if !ok || b.now().After(e.expiresAt) {
			return present.View{}, fmt.Errorf("%w: %v", ErrNoView, err)
		}
		e.expiresAt = b.now().Add(b.ttl)
		v := e.view
		v.Stale = true
		return v, nil
	}
	if err != nil {
		return present.View{}, err
	}

	v := present.Render(res, b.baseYear)
	b.mu.Lock()
	b.store[k] = &entry{view: v, expiresAt: b.now().Add(b.ttl)}
	b.mu.Unlock()
	return v, nil
}

// Get returns the stored view, if any and not expired.
func (b *Board) Get(sessionID string, kind model.Kind) (present.View, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.store[key{session: sessionID, kind: kind}]
	if !ok || b.now().After(e.expiresAt) {
		return present.View{}, false
	}
	return e.view, true
}

// Forget drops every view of a session.
func (b *Board) Forget(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for k := range b.store {
		if k.session == sessionID {
			delete(b.store, k)
		}
	}
}

// Len is the number of stored views, expired ones included until the next Sweep.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.store)
}

// Sweep removes expired entries and reports how many went.
func (b *Board) Sweep() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	n := 0
	for k, e := range b.store {
		if now.After(e.expiresAt) {
			delete(b.store, k)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (b *Board) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Sweep()
		}
	}
}
