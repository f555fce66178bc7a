// Package share copies or shares a single quote.
package share

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"quotevault/internal/domain"
	"quotevault/internal/eventbus"
	"quotevault/internal/notify"
)

// Copy confirmation shown to the user
const (
	CopiedTitle       = "Quote copied!"
	CopiedDescription = "The quote has been copied to your clipboard."
)

// ErrClipboardUnavailable is returned when no clipboard backend is present
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard writes text to the system clipboard
type Clipboard interface {
	Copy(text string) error
}

// NativeSharer hands text to a platform share facility
type NativeSharer interface {
	Supported() bool
	Share(title, text string) error
}

// SystemClipboard is the clipboard of the host
type SystemClipboard struct{}

func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Text formats a quote for copying: "<quote>" - <author>
func Text(q domain.Quote) string {
	return fmt.Sprintf("\"%s\" - %s", q.Text, q.Author)
}

// Title is the share sheet title for a quote
func Title(q domain.Quote) string {
	return "Quote by " + q.Author
}

// Service copies and shares quotes
type Service struct {
	clipboard Clipboard
	sharer    NativeSharer
	reporter  notify.Reporter
	bus       eventbus.EventBus
	logger    *zap.Logger
}

// NewService creates a share service. sharer may be nil, in which case
// sharing always falls back to copying.
func NewService(cb Clipboard, sharer NativeSharer, reporter notify.Reporter, bus eventbus.EventBus, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		clipboard: cb,
		sharer:    sharer,
		reporter:  reporter,
		bus:       bus,
		logger:    logger.Named("share"),
	}
}

// CopyQuote puts the formatted quote on the clipboard and confirms it to the user
func (s *Service) CopyQuote(q domain.Quote) error {
	if s.clipboard == nil {
		return ErrClipboardUnavailable
	}
	if err := s.clipboard.Copy(Text(q)); err != nil {
		s.logger.Warn("copy failed", zap.String("quote_id", q.ID), zap.Error(err))
		s.report("Copy failed", err.Error(), domain.SeverityWarning)
		return fmt.Errorf("copy quote %s: %w", q.ID, err)
	}
	s.report(CopiedTitle, CopiedDescription, domain.SeverityInfo)
	s.publish(q, true)
	return nil
}

// ShareQuote uses the native sharer when supported and otherwise copies
func (s *Service) ShareQuote(q domain.Quote) error {
	if s.sharer == nil || !s.sharer.Supported() {
		return s.CopyQuote(q)
	}
	if err := s.sharer.Share(Title(q), Text(q)); err != nil {
		s.logger.Warn("share failed", zap.String("quote_id", q.ID), zap.Error(err))
		s.report("Share failed", err.Error(), domain.SeverityWarning)
		return fmt.Errorf("share quote %s: %w", q.ID, err)
	}
	s.publish(q, false)
	return nil
}

func (s *Service) report(title, description string, severity domain.Severity) {
	if s.reporter != nil {
		s.reporter.Report(title, description, severity)
	}
}

func (s *Service) publish(q domain.Quote, copied bool) {
	if s.bus != nil {
		s.bus.Publish(eventbus.QuoteSharedEvent{QuoteID: q.ID, Copied: copied})
	}
}
