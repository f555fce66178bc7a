// Package notify delivers user-facing messages. Delivery itself is somebody
// else's problem: the UI renders NotificationEvents however it likes.
package notify

import (
	"go.uber.org/zap"

	"quotevault/internal/domain"
	"quotevault/internal/eventbus"
)

// Reporter is the notification collaborator
type Reporter interface {
	Report(title, description string, severity domain.Severity)
}

// BusReporter publishes notifications on the event bus
type BusReporter struct {
	bus eventbus.EventBus
}

// NewBusReporter creates a reporter backed by the event bus
func NewBusReporter(bus eventbus.EventBus) *BusReporter {
	return &BusReporter{bus: bus}
}

func (r *BusReporter) Report(title, description string, severity domain.Severity) {
	r.bus.Publish(eventbus.NotificationEvent{
		Title:       title,
		Description: description,
		Severity:    severity,
	})
}

// LogReporter writes notifications to the log
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter creates a reporter that logs
func NewLogReporter(logger *zap.Logger) *LogReporter {
	return &LogReporter{logger: logger.Named("notify")}
}

func (r *LogReporter) Report(title, description string, severity domain.Severity) {
	fields := []zap.Field{zap.String("title", title), zap.String("description", description)}
	switch severity {
	case domain.SeverityError:
		r.logger.Error("notification", fields...)
	case domain.SeverityWarning:
		r.logger.Warn("notification", fields...)
	default:
		r.logger.Info("notification", fields...)
	}
}

// Multi fans a notification out to several reporters
type Multi []Reporter

func (m Multi) Report(title, description string, severity domain.Severity) {
	for _, r := range m {
		if r != nil {
			r.Report(title, description, severity)
		}
	}
}

// Func adapts a plain function to Reporter
type Func func(title, description string, severity domain.Severity)

func (f Func) Report(title, description string, severity domain.Severity) {
	f(title, description, severity)
}
