// Package event provides a synchronous, single-threaded publish/subscribe
// dispatcher for presenter notifications.
package event

import (
	"log/slog"
	"sync"
)

// Type identifies an event kind.
type Type string

const (
	// TypeSelected fires when the user picks a note in the list.
	TypeSelected Type = "note-selected"
	// TypeSaved fires after the editor persisted a note.
	TypeSaved Type = "note-saved"
)

// Event is implemented by every payload published on the dispatcher.
type Event interface {
	EventType() Type
}

// Selected carries the picked note's editable fields.
type Selected struct {
	ID      int64
	Title   string
	Content string
	Tags    string
}

// EventType implements Event.
func (Selected) EventType() Type { return TypeSelected }

// Saved reports a successful editor save.
type Saved struct {
	ID      int64
	Created bool // true when the save inserted a new row
}

// EventType implements Event.
func (Saved) EventType() Type { return TypeSaved }

// Handler receives published events.
type Handler func(Event)

// Dispatcher delivers events to subscribers in subscription order, on the
// publisher's goroutine, before Publish returns.
type Dispatcher struct {
	mu       sync.Mutex
	handlers map[Type][]Handler
	closed   bool
	logger   *slog.Logger
}

// New creates a dispatcher that logs to slog.Default().
func New() *Dispatcher {
	return NewWithLogger(slog.Default())
}

// NewWithLogger creates a dispatcher with a specific logger.
func NewWithLogger(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[Type][]Handler),
		logger:   logger,
	}
}

// Subscribe registers h for events of type t.
func (d *Dispatcher) Subscribe(t Type, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.handlers[t] = append(d.handlers[t], h)
}

// Publish invokes every handler subscribed to e's type.
// Handlers may publish further events; those are delivered depth-first.
func (d *Dispatcher) Publish(e Event) {
	if d == nil || e == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	hs := append([]Handler(nil), d.handlers[e.EventType()]...)
	d.mu.Unlock()

	d.logger.Debug("event: publish", "type", e.EventType(), "subscribers", len(hs))
	for _, h := range hs {
		h(e)
	}
}

// Close drops all subscribers; later Publish calls are ignored.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.handlers = nil
}
