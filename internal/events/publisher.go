package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/fivetwenty-io/batfish/pkg/batfish"
	"github.com/nats-io/nats.go"
)

// ErrNotConnected is returned when publishing on a closed connection.
var ErrNotConnected = errors.New("nats not connected")

// Event records a state-changing operation performed through the CLI.
type Event struct {
	Event        string    `json:"event"`
	ResourceType string    `json:"resource_type"`
	ResourceID   int       `json:"resource_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	ActionID     int       `json:"action_id,omitempty"`
	Time         time.Time `json:"time"`
}

// NewEvent builds an event stamped with the current UTC time.
func NewEvent(event, resourceType string, resourceID int) Event {
	return Event{
		Event:        event,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Time:         time.Now().UTC(),
	}
}

// Publisher sends events somewhere. Publishing is best effort: callers log
// failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// NopPublisher discards events.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() {}

// NATSPublisher publishes events as JSON on a NATS subject.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNATSPublisher connects to url. An empty subject uses
// constants.DefaultEventSubject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = constants.DefaultEventSubject
	}

	opts := []nats.Option{
		nats.Name("batfish-cli"),
		nats.Timeout(constants.EventPublishTimeout),
		nats.MaxReconnects(0),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}

	return &NATSPublisher{nc: nc, subject: subject}, nil
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// Publish implements Publisher. It flushes so the event leaves the process
// before the CLI exits.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if p.nc == nil || p.nc.IsClosed() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	err = p.nc.Publish(p.subject, payload)
	if err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.EventPublishTimeout)
	defer cancel()

	err = p.nc.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("flushing events: %w", err)
	}

	return nil
}

// Close implements Publisher.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
	}
}

// New returns a NATS publisher when url is set and reachable, and a
// NopPublisher otherwise. Connection failures are logged, not returned.
func New(url, subject string, logger batfish.Logger) Publisher {
	if url == "" {
		return NopPublisher{}
	}

	publisher, err := NewNATSPublisher(url, subject)
	if err != nil {
		if logger != nil {
			logger.Warn("event publishing disabled", map[string]interface{}{"error": err.Error()})
		}

		return NopPublisher{}
	}

	return publisher
}
