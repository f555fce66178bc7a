package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotevault/internal/domain"
)

// linesPerQuote is how many screen lines one result takes, spacer included
const linesPerQuote = 3

// ResultRenderer draws the quote list
type ResultRenderer struct {
	styles   *Styles
	showTags bool
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles, showTags bool) *ResultRenderer {
	return &ResultRenderer{styles: styles, showTags: showTags}
}

// Render draws the window of quotes around cursor that fits in height lines
func (r *ResultRenderer) Render(quotes []domain.Quote, cursor int, focused, dimmed bool, width, height int) string {
	if len(quotes) == 0 {
		return r.styles.Dim.Render("No quotes found")
	}

	visible := height / linesPerQuote
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(quotes) {
		end = len(quotes)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(r.renderQuote(quotes[i], focused && i == cursor, width))
		b.WriteString("\n")
	}
	if end < len(quotes) {
		b.WriteString(r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(quotes)-end)))
	}

	out := strings.TrimSuffix(b.String(), "\n")
	if dimmed {
		return r.styles.Dim.Render(out)
	}
	return out
}

func (r *ResultRenderer) renderQuote(q domain.Quote, atCursor bool, width int) string {
	marker := "  "
	if atCursor {
		marker = "▸ "
	}

	textWidth := width - 4
	if textWidth < 20 {
		textWidth = 20
	}
	text := truncate(fmt.Sprintf("\"%s\"", q.Text), textWidth)
	line1 := marker + r.styles.Quote.Render(text)

	meta := []string{r.styles.Author.Render("— " + q.Author)}
	if q.Category != "" {
		meta = append(meta, r.styles.Category.Render(q.Category))
	}
	if r.showTags && len(q.Tags) > 0 {
		tags := make([]string, len(q.Tags))
		for i, t := range q.Tags {
			tags[i] = "#" + t
		}
		meta = append(meta, r.styles.Tag.Render(strings.Join(tags, " ")))
	}
	line2 := "    " + strings.Join(meta, r.styles.Dim.Render(" · "))

	if atCursor {
		line1 = r.styles.Cursor.Render(line1)
	}
	return line1 + "\n" + line2
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
