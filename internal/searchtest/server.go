// Package searchtest provides an in-memory stand-in for the remote
// /api/search endpoint for use in tests.
package searchtest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/schema"
)

// Params is the decoded query string of a search request
type Params struct {
	Q          string   `schema:"q"`
	Page       int      `schema:"page"`
	Limit      int      `schema:"limit"`
	Sort       string   `schema:"sort"`
	Order      string   `schema:"order"`
	Facets     bool     `schema:"facets"`
	Categories []string `schema:"categories[]"`
	Tags       []string `schema:"tags[]"`
	// HasQ is set when q was present at all
	HasQ bool `schema:"-"`
}

// Quote is a corpus entry in wire form
type Quote struct {
	ID         int      `json:"id"`
	Quote      string   `json:"quote"`
	Author     string   `json:"author"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	Popularity float64  `json:"popularity"`
}

type bucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type facets struct {
	Categories []bucket `json:"categories"`
	Tags       []bucket `json:"tags"`
}

type pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"total_pages"`
	TotalCount int  `json:"total_count"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type response struct {
	Quotes     []Quote    `json:"quotes"`
	Pagination pagination `json:"pagination"`
	Facets     *facets    `json:"facets,omitempty"`
}

// Server is a running stub endpoint
type Server struct {
	*httptest.Server

	decoder *schema.Decoder

	mu       sync.Mutex
	corpus   []Quote
	requests []Params
	status   int
	delay    func(Params) time.Duration
	raw      string
}

// NewServer starts a stub serving corpus. It is closed when the test ends.
func NewServer(t testing.TB, corpus []Quote) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{decoder: decoder, corpus: corpus}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", s.handleSearch)
	mux.HandleFunc("/health", s.handleHealth)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// FailWith makes every following search answer with code. Zero restores normal service.
func (s *Server) FailWith(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
}

// RespondRaw makes every following search answer 200 with body verbatim.
// An empty body restores normal service.
func (s *Server) RespondRaw(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = body
}

// DelayBy holds each response for fn(params) before answering
func (s *Server) DelayBy(fn func(Params) time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = fn
}

// Requests returns every search request received so far
func (s *Server) Requests() []Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Params(nil), s.requests...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","message":"Quotes API is running"}`))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var p Params
	values := r.URL.Query()
	if err := s.decoder.Decode(&p, values); err != nil {
		http.Error(w, `{"error":"bad parameters"}`, http.StatusBadRequest)
		return
	}
	_, p.HasQ = values["q"]

	s.mu.Lock()
	s.requests = append(s.requests, p)
	status, delay, raw := s.status, s.delay, s.raw
	corpus := s.corpus
	s.mu.Unlock()

	if delay != nil {
		select {
		case <-time.After(delay(p)):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"forced failure"}`))
		return
	}
	if raw != "" {
		_, _ = w.Write([]byte(raw))
		return
	}

	body, err := sonic.Marshal(Search(corpus, p))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(body)
}

// Search evaluates p against corpus the way the stub endpoint does
func Search(corpus []Quote, p Params) response {
	q := strings.ToLower(strings.TrimSpace(p.Q))
	var matched []Quote
	for _, quote := range corpus {
		if q != "" && !matchesText(quote, q) {
			continue
		}
		if len(p.Categories) > 0 && !contains(p.Categories, quote.Category) {
			continue
		}
		if !containsAll(quote.Tags, p.Tags) {
			continue
		}
		matched = append(matched, quote)
	}

	sortQuotes(matched, p.Sort, p.Order)

	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	total := len(matched)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	totalPages := (total + limit - 1) / limit

	resp := response{
		Quotes: append([]Quote{}, matched[start:end]...),
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
			TotalCount: total,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}
	if p.Facets {
		resp.Facets = countFacets(matched)
	}
	return resp
}

func matchesText(quote Quote, q string) bool {
	if strings.Contains(strings.ToLower(quote.Quote), q) ||
		strings.Contains(strings.ToLower(quote.Author), q) ||
		strings.Contains(strings.ToLower(quote.Category), q) {
		return true
	}
	for _, tag := range quote.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortQuotes(quotes []Quote, key, order string) {
	less := func(i, j int) bool { return quotes[i].Popularity < quotes[j].Popularity }
	switch key {
	case "recent":
		less = func(i, j int) bool { return quotes[i].ID < quotes[j].ID }
	case "author":
		less = func(i, j int) bool { return quotes[i].Author < quotes[j].Author }
	case "length":
		less = func(i, j int) bool { return len(quotes[i].Quote) < len(quotes[j].Quote) }
	}
	if order == "desc" {
		sort.SliceStable(quotes, func(i, j int) bool { return less(j, i) })
		return
	}
	sort.SliceStable(quotes, less)
}

func countFacets(quotes []Quote) *facets {
	categories := map[string]int{}
	tags := map[string]int{}
	for _, q := range quotes {
		if q.Category != "" {
			categories[q.Category]++
		}
		for _, t := range q.Tags {
			tags[t]++
		}
	}
	return &facets{Categories: toBuckets(categories), Tags: toBuckets(tags)}
}

func toBuckets(counts map[string]int) []bucket {
	out := make([]bucket, 0, len(counts))
	for v, c := range counts {
		out = append(out, bucket{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		if !contains(have, w) {
			return false
		}
	}
	return true
}

// Corpus is a small fixed data set used across tests
func Corpus() []Quote {
	return []Quote{
		{ID: 1, Quote: "The only true wisdom is in knowing you know nothing.", Author: "Socrates", Category: "Wisdom", Tags: []string{"knowledge", "humility"}, Popularity: 0.9},
		{ID: 2, Quote: "Love all, trust a few, do wrong to none.", Author: "William Shakespeare", Category: "Love", Tags: []string{"trust", "life"}, Popularity: 0.7},
		{ID: 3, Quote: "Time is what we want most, but what we use worst.", Author: "William Penn", Category: "Wisdom", Tags: []string{"time", "life"}, Popularity: 0.6},
		{ID: 4, Quote: "Lost time is never found again.", Author: "Benjamin Franklin", Category: "Time", Tags: []string{"time"}, Popularity: 0.8},
		{ID: 5, Quote: "Where there is love there is life.", Author: "Mahatma Gandhi", Category: "Love", Tags: []string{"life"}, Popularity: 0.5},
	}
}
