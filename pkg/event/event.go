// Package event dispatches record change notifications to listeners.
//
//	d := event.NewDispatcher()
//	d.Listen(event.Changed, func(c event.Change) { ... })
//	d.Fire(event.Changed, event.Change{Resource: "users", Action: event.Created, ID: 1})
package event

import (
	"sync"

	"github.com/shashiranjanraj/offerdesk/pkg/metrics"
)

// Changed is the event name used for every record mutation.
const Changed = "record.changed"

// Actions carried by Change.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Change describes one successful mutation.
type Change struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
	ID       int    `json:"id"`
	// PreviousID is set when an update moved the record to a new id.
	PreviousID int `json:"previous_id,omitempty"`
}

// Handler is a function that receives an event payload.
type Handler func(c Change)

// Dispatcher fans events out to registered listeners. The zero value is not
// usable; build one with NewDispatcher.
type Dispatcher struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[string][]listener
}

type listener struct {
	id uint64
	h  Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string][]listener{}}
}

// Listen registers a handler for the given event name.
func (d *Dispatcher) Listen(event string, handler Handler) {
	d.Subscribe(event, handler)
}

// Subscribe is Listen with a cancel func that removes the handler again.
// Streaming endpoints subscribe per connection.
func (d *Dispatcher) Subscribe(event string, handler Handler) (cancel func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	id := d.next
	d.handlers[event] = append(d.handlers[event], listener{id: id, h: handler})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		ls := d.handlers[event]
		for i, l := range ls {
			if l.id == id {
				d.handlers[event] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}
}

// Fire dispatches an event synchronously to all registered listeners.
func (d *Dispatcher) Fire(event string, c Change) {
	metrics.ChangeEvents.WithLabelValues(c.Resource, c.Action).Inc()
	for _, h := range d.listeners(event) {
		h(c)
	}
}

// Flush removes all listeners.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = map[string][]listener{}
}

func (d *Dispatcher) listeners(event string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	hs := make([]Handler, len(d.handlers[event]))
	for i, l := range d.handlers[event] {
		hs[i] = l.h
	}
	return hs
}
