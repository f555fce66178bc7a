package views

import (
	"github.com/charmbracelet/lipgloss"

	"quotevault/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Label         lipgloss.Style
	Query         lipgloss.Style
	Section       lipgloss.Style
	SectionFocus  lipgloss.Style
	Facet         lipgloss.Style
	FacetSelected lipgloss.Style
	Count         lipgloss.Style
	Cursor        lipgloss.Style
	Quote         lipgloss.Style
	Author        lipgloss.Style
	Category      lipgloss.Style
	Tag           lipgloss.Style
	Popup         lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:   lipgloss.NewStyle().Faint(true),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Query: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		SectionFocus: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("39")),
		Facet: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FacetSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("78")), // green
		Count:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Cursor: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Quote:  lipgloss.NewStyle().Italic(true),
		Author: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		Category: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Tag:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
	}
}

// ForSeverity returns the status style for a notification
func (s *Styles) ForSeverity(severity domain.Severity) lipgloss.Style {
	switch severity {
	case domain.SeverityError:
		return s.StatusError
	case domain.SeverityWarning:
		return s.StatusWarning
	default:
		return s.StatusInfo
	}
}
