package ui

import (
	"quotevault/internal/eventbus"
	"quotevault/internal/fetch"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchResolvedMsg carries a finished fetch back to the update loop
type searchResolvedMsg struct {
	env  fetch.Envelope
	resp *fetch.Response
	err  error
}

// toastExpiredMsg clears the toast with the matching id
type toastExpiredMsg struct {
	id int
}

// shareDoneMsg reports the end of a copy or share
type shareDoneMsg struct {
	quoteID string
	err     error
}
