//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
)

type stubQuote struct {
	ID         int      `json:"id"`
	Quote      string   `json:"quote"`
	Author     string   `json:"author"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	popularity float64
}

type stubBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

var stubCorpus = []stubQuote{
	{ID: 1, Quote: "The only true wisdom is in knowing you know nothing.", Author: "Socrates", Category: "Wisdom", Tags: []string{"knowledge"}, popularity: 0.9},
	{ID: 2, Quote: "Love all, trust a few, do wrong to none.", Author: "William Shakespeare", Category: "Love", Tags: []string{"trust"}, popularity: 0.7},
	{ID: 3, Quote: "Lost time is never found again.", Author: "Benjamin Franklin", Category: "Time", Tags: []string{"time"}, popularity: 0.8},
}

// quoteStub is a minimal search endpoint for driving the real binary
type quoteStub struct {
	*httptest.Server
	failing atomic.Bool
	hits    atomic.Int64
}

func newQuoteStub(t *testing.T) *quoteStub {
	s := &quoteStub{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", s.search)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *quoteStub) search(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)
	if s.failing.Load() {
		http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
		return
	}

	values := r.URL.Query()
	q := strings.ToLower(values.Get("q"))
	categories := values["categories[]"]

	var matched []stubQuote
	for _, quote := range stubCorpus {
		if q != "" && !strings.Contains(strings.ToLower(quote.Quote+" "+quote.Author), q) {
			continue
		}
		if len(categories) > 0 && !containsString(categories, quote.Category) {
			continue
		}
		matched = append(matched, quote)
	}
	if values.Get("sort") == "author" {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].Author < matched[j].Author })
	} else {
		sort.SliceStable(matched, func(i, j int) bool { return matched[i].popularity > matched[j].popularity })
	}

	counts := map[string]int{}
	for _, quote := range matched {
		counts[quote.Category]++
	}
	buckets := make([]stubBucket, 0, len(counts))
	for _, quote := range stubCorpus {
		if n, ok := counts[quote.Category]; ok {
			buckets = append(buckets, stubBucket{Value: quote.Category, Count: n})
			delete(counts, quote.Category)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"quotes": append([]stubQuote{}, matched...),
		"pagination": map[string]any{
			"page": 1, "limit": 20, "total_pages": 1, "total_count": len(matched),
			"has_next": false, "has_prev": false,
		},
		"facets": map[string]any{"categories": buckets, "tags": []stubBucket{}},
	})
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
