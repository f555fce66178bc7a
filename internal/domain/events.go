package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchIssued           EventType = "SearchIssued"
	EventSearchSettled          EventType = "SearchSettled"
	EventStaleResponseDiscarded EventType = "StaleResponseDiscarded"
	EventNotification           EventType = "Notification"
	EventQuoteShared            EventType = "QuoteShared"
	EventConfigLoaded           EventType = "ConfigLoaded"
	EventConfigSaved            EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchIssuedEvent is emitted when a request leaves the orchestrator
type SearchIssuedEvent struct {
	Sequence uint64
	Key      string // encoded request descriptor
}

func (e SearchIssuedEvent) Type() EventType { return EventSearchIssued }

// SearchSettledEvent is emitted when the current request's outcome is accepted
type SearchSettledEvent struct {
	Sequence   uint64
	Success    bool
	ErrorKind  string // network, status, malformed; empty on success
	ResultSize int
	TotalCount int
	ElapsedMs  int64
}

func (e SearchSettledEvent) Type() EventType { return EventSearchSettled }

// StaleResponseDiscardedEvent is emitted when a superseded response arrives
type StaleResponseDiscardedEvent struct {
	Sequence uint64
	Latest   uint64
}

func (e StaleResponseDiscardedEvent) Type() EventType { return EventStaleResponseDiscarded }

// Severity of a user-facing notification
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// NotificationEvent carries a toast-style message for the UI
type NotificationEvent struct {
	Title       string
	Description string
	Severity    Severity
}

func (e NotificationEvent) Type() EventType { return EventNotification }

// QuoteSharedEvent is emitted after a quote was copied or shared
type QuoteSharedEvent struct {
	QuoteID string
	Copied  bool // true when the clipboard fallback was used
}

func (e QuoteSharedEvent) Type() EventType { return EventQuoteShared }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
