// Package sse streams Server-Sent Events. Feed serves the record change
// feed to clients that cannot speak websocket:
//
//	r.Get("/events", "events.stream", sse.Feed(dispatcher, 15*time.Second))
//
//	$ curl -N localhost:5000/events
//	: connected
//
//	event: record.changed
//	data: {"resource":"users","action":"created","id":6}
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/offerdesk/pkg/event"
	"github.com/shashiranjanraj/offerdesk/pkg/logger"
	"github.com/shashiranjanraj/offerdesk/pkg/response"
)

// Stream represents an active SSE connection to one client.
type Stream struct {
	w  http.ResponseWriter
	r  *http.Request
	rc *http.ResponseController
}

// New sets the event-stream headers and flushes them. It answers 500 and
// returns nil when no writer in the chain supports flushing.
func New(w http.ResponseWriter, r *http.Request) *Stream {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // disable nginx buffering

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			response.Error(w, http.StatusInternalServerError, "streaming not supported")
		}
		return nil
	}
	return &Stream{w: w, r: r, rc: rc}
}

// Send writes a named event with a JSON-encoded data payload.
func (s *Stream) Send(name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("sse: marshal: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", name, payload); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Comment writes an SSE comment line, used as a keepalive.
func (s *Stream) Comment(msg string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", msg); err != nil {
		return err
	}
	return s.rc.Flush()
}

// IsClosed reports whether the client has disconnected.
func (s *Stream) IsClosed() bool {
	return s.r.Context().Err() != nil
}

type stopKey struct{}

// WithStop returns ctx carrying stop. A server using it as its base context
// closes stop when shutting down, and every open Feed returns.
func WithStop(ctx context.Context, stop <-chan struct{}) context.Context {
	return context.WithValue(ctx, stopKey{}, stop)
}

// stopping returns the channel set by WithStop, or nil, which never fires.
func stopping(ctx context.Context) <-chan struct{} {
	stop, _ := ctx.Value(stopKey{}).(<-chan struct{})
	return stop
}

// Feed streams every event.Changed fired on d until the client goes away.
// A client that falls more than 64 events behind misses the overflow. The
// stream also ends when the server shuts down; see WithStop.
func Feed(d *event.Dispatcher, heartbeat time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ch := make(chan event.Change, 64)
		cancel := d.Subscribe(event.Changed, func(c event.Change) {
			select {
			case ch <- c:
			default:
			}
		})
		defer cancel()

		stream := New(w, r)
		if stream == nil {
			return
		}
		if err := stream.Comment("connected"); err != nil {
			return
		}

		tick := time.NewTicker(heartbeat)
		defer tick.Stop()

		stop := stopping(r.Context())
		for {
			select {
			case <-r.Context().Done():
				return
			case <-stop:
				return
			case c := <-ch:
				if err := stream.Send(event.Changed, c); err != nil {
					logger.WithCtx(r.Context()).Debug("sse: client write failed", "error", err)
					return
				}
			case <-tick.C:
				if err := stream.Comment("ping"); err != nil {
					return
				}
			}
		}
	}
}
