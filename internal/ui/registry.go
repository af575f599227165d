package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"studentportal/internal/logger"
	"studentportal/internal/view"
)

// defaultViewLimit caps how many list views the registry holds at once.
const defaultViewLimit = 256

// Registry keeps rendered list views alive between the page that showed them
// and the delete actions posted from it, so a delete edits the same rows the
// user is looking at. A stored view is rendered again only once per action
// that marked it pending; any other visit fetches a fresh list. Views idle for
// longer than the TTL are disposed, and the oldest view is evicted when the
// registry is full.
type Registry struct {
	ttl   time.Duration
	limit int
	now   func() time.Time

	mu    sync.Mutex
	views map[string]*registered

	cron *cron.Cron
}

type registered struct {
	view     *view.ListView
	lastUsed time.Time
	pending  bool
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:   ttl,
		limit: defaultViewLimit,
		now:   time.Now,
		views: make(map[string]*registered),
	}
}

// Put stores v and returns the token that identifies it. When the registry is
// full the least recently used view is disposed first.
func (r *Registry) Put(v *view.ListView) string {
	token := uuid.NewString()
	var evicted []*view.ListView

	r.mu.Lock()
	for r.limit > 0 && len(r.views) >= r.limit {
		oldest := ""
		for t, e := range r.views {
			if oldest == "" || e.lastUsed.Before(r.views[oldest].lastUsed) {
				oldest = t
			}
		}
		evicted = append(evicted, r.views[oldest].view)
		delete(r.views, oldest)
	}
	r.views[token] = &registered{view: v, lastUsed: r.now()}
	r.mu.Unlock()

	for _, old := range evicted {
		old.Dispose()
	}
	return token
}

// Get returns the live view for token and marks it as used.
func (r *Registry) Get(token string) (*view.ListView, bool) {
	if token == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[token]
	if !ok || !e.view.Alive() {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.view, true
}

// MarkPending lets the next Take for token return its view once.
func (r *Registry) MarkPending(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.views[token]; ok {
		e.pending = true
	}
}

// Take returns the view for token only when it is pending, clearing the flag.
func (r *Registry) Take(token string) (*view.ListView, bool) {
	if token == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.views[token]
	if !ok || !e.pending || !e.view.Alive() {
		return nil, false
	}
	e.pending = false
	e.lastUsed = r.now()
	return e.view, true
}

// Remove disposes and forgets the view for token.
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	e, ok := r.views[token]
	delete(r.views, token)
	r.mu.Unlock()
	if ok {
		e.view.Dispose()
	}
}

// Sweep disposes every view idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*view.ListView
	for token, e := range r.views {
		if e.lastUsed.Before(cutoff) || !e.view.Alive() {
			expired = append(expired, e.view)
			delete(r.views, token)
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.Dispose()
	}
	return len(expired)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Start runs Sweep on the given cron spec, e.g. "@every 1m".
func (r *Registry) Start(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := r.Sweep(); n > 0 {
			logger.Log.Debugf("Disposed %d idle list views", n)
		}
	})
	if err != nil {
		return err
	}
	r.cron = c
	c.Start()
	logger.Log.Infof("View registry sweeping on schedule %q (ttl %s)", spec, r.ttl)
	return nil
}

// Stop halts the sweep schedule and disposes every remaining view.
func (r *Registry) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*registered)
	r.mu.Unlock()
	for _, e := range views {
		e.view.Dispose()
	}
}
