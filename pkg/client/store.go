package client

import (
	"sync"
	"time"
)

// DefaultDebounce is how long the store waits after a page/search/limit
// change before refetching, so fast typing results in one request.
const DefaultDebounce = 300 * time.Millisecond

// StoreState is a snapshot of the cached product listing.
type StoreState struct {
	Products   []Product
	Total      int64
	TotalPages int
	Page       int
	Limit      int
	Search     string
	Loading    bool
	Err        error
}

// ProductStore caches the last fetched page of products along with the
// active search term. Changing the page, limit or search term schedules a
// debounced refetch; subscribers are notified on every state change.
type ProductStore struct {
	client   *Client
	debounce time.Duration

	mu        sync.Mutex
	state     StoreState
	timer     *time.Timer
	listeners map[int]func(StoreState)
	nextID    int
}

// NewProductStore creates a store bound to the given API client.
func NewProductStore(c *Client) *ProductStore {
	return &ProductStore{
		client:   c,
		debounce: DefaultDebounce,
		state: StoreState{
			Page:  1,
			Limit: 10,
		},
		listeners: make(map[int]func(StoreState)),
	}
}

// State returns a snapshot of the current store state.
func (s *ProductStore) State() StoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener invoked with a state snapshot after every
// change. The returned function removes the listener.
func (s *ProductStore) Subscribe(fn func(StoreState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// SetPage changes the current page and schedules a refetch.
func (s *ProductStore) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if page == s.state.Page {
		return
	}
	s.state.Page = page
	s.scheduleRefreshLocked()
}

// SetLimit changes the page size and schedules a refetch.
func (s *ProductStore) SetLimit(limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit < 1 {
		limit = 10
	}
	if limit == s.state.Limit {
		return
	}
	s.state.Limit = limit
	s.scheduleRefreshLocked()
}

// SetSearch changes the search term, resets to the first page and schedules
// a refetch.
func (s *ProductStore) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if term == s.state.Search {
		return
	}
	s.state.Search = term
	s.state.Page = 1 // Reset page when searching
	s.scheduleRefreshLocked()
}

// Refresh fetches immediately, bypassing the debounce. Used for the initial
// load and after mutations.
func (s *ProductStore) Refresh() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.fetch()
}

// scheduleRefreshLocked (re)arms the debounce timer. Callers hold s.mu.
func (s *ProductStore) scheduleRefreshLocked() {
	s.state.Loading = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fetch)
	s.notifyLocked()
}

// fetch performs the HTTP request and publishes the result.
func (s *ProductStore) fetch() {
	s.mu.Lock()
	page, limit, search := s.state.Page, s.state.Limit, s.state.Search
	s.mu.Unlock()

	resp, err := s.client.GetProducts(page, limit, search)

	s.mu.Lock()
	defer s.mu.Unlock()
	// A later change may have superseded this fetch; drop stale results.
	if page != s.state.Page || limit != s.state.Limit || search != s.state.Search {
		return
	}
	s.state.Loading = false
	if err != nil {
		s.state.Err = err
	} else {
		s.state.Err = nil
		s.state.Products = resp.Products
		s.state.Total = resp.Total
		s.state.TotalPages = resp.TotalPages
	}
	s.notifyLocked()
}

// notifyLocked delivers a state snapshot to every listener. Callers hold
// s.mu; listeners run on a fresh goroutine so they can call back into the
// store without deadlocking.
func (s *ProductStore) notifyLocked() {
	snapshot := s.state
	for _, fn := range s.listeners {
		go fn(snapshot)
	}
}
