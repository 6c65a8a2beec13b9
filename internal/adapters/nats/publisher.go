package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// Subjects and streams used by the inspector.
const (
	StreamEvents = "INSPECTOR_EVENTS"

	SubjectClassified = "inspector.classified"
	SubjectBatch      = "inspector.batch"
	SubjectLive       = "inspector.live"
)

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStreams(js); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func ensureStreams(js nats.JetStreamContext) error {
	streams := []nats.StreamConfig{
		{
			Name:      StreamEvents,
			Subjects:  []string{SubjectClassified + ".>", SubjectBatch + ".>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// stream may already exist
			if _, err := js.UpdateStream(&cfg); err != nil {
				return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}
	return nil
}

// ClassifiedSubject is the subject an event with the given status lands on.
func ClassifiedSubject(status domain.Status) string {
	return SubjectClassified + "." + strings.ToLower(string(status))
}

// PublishClassification persists the event on JetStream and mirrors it to
// the live subject for WebSocket listeners.
func (p *Publisher) PublishClassification(ctx context.Context, event *domain.ClassificationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(ClassifiedSubject(event.Status), data, nats.Context(ctx)); err != nil {
		return err
	}
	return p.conn.Publish(SubjectLive, data)
}

// PublishBatchReport publishes the summary of a batch run.
func (p *Publisher) PublishBatchReport(ctx context.Context, report *domain.BatchReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	id := report.PolygonID
	if id == "" {
		id = "adhoc"
	}
	_, err = p.js.Publish(SubjectBatch+"."+id, data, nats.Context(ctx))
	return err
}

// Conn exposes the underlying connection for health checks.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.Name("convex-polygon-inspector"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
