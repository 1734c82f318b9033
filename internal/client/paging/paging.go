// Package paging keeps the page, limit, sort and search settings of each
// resource list and turns them into query strings.
package paging

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
)

// Default list settings.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Direction is the sort order of a list.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc" in any case; anything else is Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Query parameter names understood by the backend.
const (
	ParamPage     = "page"
	ParamLimit    = "limit"
	ParamOrderBy  = "order_by"
	ParamOrderDir = "order_dir"
	ParamSearch   = "search"
)

// Query is the list state of one resource kind. Page is always >= 1 and
// Limit always > 0.
type Query struct {
	Page      int
	Limit     int
	SortField string
	Direction Direction
	Search    string
}

// NewQuery returns page 1, the default limit, ascending, no sort or search.
func NewQuery() Query {
	return Query{Page: DefaultPage, Limit: DefaultLimit, Direction: Asc}
}

// SetPage moves to page p, clamping to 1.
func (q *Query) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	q.Page = p
}

// Advance moves by delta pages (negative goes back), clamping to 1.
func (q *Query) Advance(delta int) {
	q.SetPage(q.Page + delta)
}

// SetLimit changes the page size. Non-positive values are ignored.
func (q *Query) SetLimit(limit int) {
	if limit > 0 {
		q.Limit = limit
	}
}

// SetSort sets the sort field and direction. An empty field clears sorting.
func (q *Query) SetSort(field string, dir Direction) {
	q.SortField = strings.TrimSpace(field)
	if dir == "" {
		dir = Asc
	}
	q.Direction = dir
}

// SetSearch sets the search term; blank clears it.
func (q *Query) SetSearch(term string) {
	q.Search = strings.TrimSpace(term)
}

// Apply starts a fresh search: page goes back to 1 and the other settings
// are replaced. A non-positive limit keeps the current one.
func (q *Query) Apply(term string, limit int, sortField string, dir Direction) {
	q.SetPage(1)
	q.SetLimit(limit)
	q.SetSort(sortField, dir)
	q.SetSearch(term)
}

// Values encodes q. Sort and search are only present when set; order_dir
// is only sent together with order_by.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(q.Page))
	v.Set(ParamLimit, strconv.Itoa(q.Limit))
	if q.SortField != "" {
		v.Set(ParamOrderBy, q.SortField)
		v.Set(ParamOrderDir, string(q.Direction))
	}
	if q.Search != "" {
		v.Set(ParamSearch, q.Search)
	}
	return v
}

// Encode returns the query string without the leading '?'.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// State holds one Query per resource kind. It is safe for concurrent use.
type State struct {
	mu      sync.Mutex
	queries map[models.Resource]*Query
}

func NewState() *State {
	return &State{queries: make(map[models.Resource]*Query)}
}

// Get returns a copy of the query for r, creating the default one.
func (s *State) Get(r models.Resource) Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.lookup(r)
}

// Update applies fn to the query for r and returns the result.
func (s *State) Update(r models.Resource, fn func(q *Query)) Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.lookup(r)
	fn(q)
	return *q
}

// Reset forgets the settings for r.
func (s *State) Reset(r models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.queries, r)
}

func (s *State) lookup(r models.Resource) *Query {
	q, ok := s.queries[r]
	if !ok {
		nq := NewQuery()
		q = &nq
		s.queries[r] = q
	}
	return q
}
