package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"quotevault/internal/domain"
	"quotevault/internal/fetch"
	"quotevault/internal/query"
)

type printer struct {
	w io.Writer

	header *color.Color
	quote  *color.Color
	author *color.Color
	dim    *color.Color
	ok     *color.Color
	fail   *color.Color
	active *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:      w,
		header: color.New(color.FgCyan, color.Bold),
		quote:  color.New(color.FgWhite),
		author: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		active: color.New(color.FgMagenta, color.Bold),
	}
}

func (p *printer) healthy(endpoint, msg string) {
	p.ok.Fprintf(p.w, "✓ %s", endpoint)
	if msg != "" {
		p.dim.Fprintf(p.w, " (%s)", msg)
	}
	fmt.Fprintln(p.w)
}

func (p *printer) failure(reason string) {
	p.fail.Fprintf(p.w, "✗ %s\n", reason)
}

func (p *printer) results(out fetch.Outcome, state query.State) {
	noun := "quotes"
	if out.TotalCount == 1 {
		noun = "quote"
	}
	p.header.Fprintf(p.w, "%d %s", out.TotalCount, noun)
	if pg := out.Pagination; pg.TotalPages > 1 {
		p.dim.Fprintf(p.w, "  page %d of %d", pg.Page, pg.TotalPages)
	}
	p.dim.Fprintf(p.w, "  sorted by %s (%s)\n", state.Sort().Label(), state.Order())

	if len(out.Quotes) == 0 {
		p.dim.Fprintln(p.w, "No quotes found")
		return
	}
	for _, q := range out.Quotes {
		fmt.Fprintln(p.w)
		p.quote.Fprintf(p.w, "  “%s”\n", q.Text)
		p.author.Fprintf(p.w, "    - %s", q.Author)
		var meta []string
		if q.Category != "" {
			meta = append(meta, q.Category)
		}
		if len(q.Tags) > 0 {
			meta = append(meta, "#"+strings.Join(q.Tags, " #"))
		}
		if len(meta) > 0 {
			p.dim.Fprintf(p.w, "  [%s]", strings.Join(meta, " · "))
		}
		fmt.Fprintln(p.w)
	}
}

func (p *printer) facets(catalog domain.FacetCatalog, state query.State) {
	p.facetGroup("Categories", catalog.Categories, state.HasCategory)
	p.facetGroup("Tags", catalog.Tags, state.HasTag)
}

func (p *printer) facetGroup(title string, buckets []domain.FacetBucket, selected func(string) bool) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintln(p.w)
	p.header.Fprintln(p.w, title)
	for _, b := range buckets {
		c := p.quote
		marker := " "
		if selected(b.Value) {
			c = p.active
			marker = "*"
		}
		c.Fprintf(p.w, "  %s %-24s", marker, b.Value)
		p.dim.Fprintf(p.w, "%5d\n", b.Count)
	}
}
