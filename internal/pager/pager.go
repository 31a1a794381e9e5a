// Package pager drives forward/backward navigation over a result set of
// possibly unknown total size. Every transition re-fetches its page; there
// is no client-side cache of previously seen pages.
package pager

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prinketaru/scriptura/internal/bible"
	"github.com/prinketaru/scriptura/internal/present"
)

// Timeout is the inactivity window after which a pager expires and stops
// accepting transitions.
const Timeout = 2 * time.Minute

// ErrExpired is returned for transitions after the inactivity window.
var ErrExpired = errors.New("pager expired")

// FetchFunc fetches one zero-based page.
type FetchFunc func(ctx context.Context, page int) (bible.SearchSet, error)

// Pager is the per-interaction navigation state machine. It belongs to
// exactly one originating user; transitions are serialized so an in-flight
// fetch can never be interleaved with another.
type Pager struct {
	mu         sync.Mutex
	fetch      FetchFunc
	ownerID    string
	page       int
	current    bible.SearchSet
	lastKnown  int // highest page known to exist when the total is unknown; -1 until discovered
	lastActive time.Time
	expired    bool
}

// New creates a pager positioned on an already-fetched first page. Callers
// must not create a pager for an errored or empty first fetch; that outcome
// is surfaced directly instead.
func New(ownerID string, first bible.SearchSet, fetch FetchFunc) *Pager {
	return &Pager{
		fetch:      fetch,
		ownerID:    ownerID,
		current:    first,
		lastKnown:  -1,
		lastActive: time.Now(),
	}
}

// OwnerID reports the user the pager belongs to.
func (p *Pager) OwnerID() string { return p.ownerID }

// Page returns the current zero-based page index.
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Current returns the most recently fetched page.
func (p *Pager) Current() bible.SearchSet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// TotalPages reports the known page count, or 0 when the backend never
// reported a total.
func (p *Pager) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPagesLocked()
}

func (p *Pager) totalPagesLocked() int {
	if p.current.TotalKnown {
		return present.TotalPages(p.current.Total, present.PageSize)
	}
	return 0
}

// Expired reports whether the inactivity window has elapsed. Once true the
// pager never becomes active again.
func (p *Pager) Expired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.expiredLocked()
}

func (p *Pager) expiredLocked() bool {
	if !p.expired && time.Since(p.lastActive) > Timeout {
		p.expired = true
	}
	return p.expired
}

// Expire forces the expired state, used when the owning interaction context
// is closed before the window elapses.
func (p *Pager) Expire() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.expired = true
}

// Move advances by delta pages (negative for Prev), re-fetching the target
// page. The target is clamped into range when the total is known. When it is
// not, a forward fetch that comes back empty pins the current page as the
// last one and the pager stays put.
func (p *Pager) Move(ctx context.Context, delta int) (bible.SearchSet, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.expiredLocked() {
		return bible.SearchSet{}, ErrExpired
	}
	p.lastActive = time.Now()

	target := p.page + delta
	if totalPages := p.totalPagesLocked(); totalPages > 0 {
		target = present.ClampPage(target, totalPages)
	} else {
		if target < 0 {
			target = 0
		}
		if p.lastKnown >= 0 && target > p.lastKnown {
			target = p.lastKnown
		}
	}
	if target == p.page {
		return p.current, nil
	}

	set, err := p.fetch(ctx, target)
	if err != nil {
		return bible.SearchSet{}, err
	}
	if len(set.Entries) == 0 && delta > 0 {
		// Ran past the end of an unknown-total set: remember the boundary
		// and keep showing the page we had.
		p.lastKnown = p.page
		return p.current, nil
	}

	p.page = target
	p.current = set
	return set, nil
}
