package natsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS and makes sure the event stream exists.
func NewSubscriber(url string) (*Subscriber, error) {
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
	return &Subscriber{conn: conn, js: js}, nil
}

// Durable consumers, created once and bound to. They outlive any subscriber.
const (
	ConsumerAudit = "audit-recorder"
	ConsumerBatch = "batch-reporter"
)

// ensureConsumer creates the durable push consumer if it does not exist yet.
func (s *Subscriber) ensureConsumer(durable, filter string) error {
	_, err := s.js.ConsumerInfo(StreamEvents, durable)
	if err == nil {
		return nil
	}
	if !errors.Is(err, nats.ErrConsumerNotFound) {
		return fmt.Errorf("consumer %s: %w", durable, err)
	}
	_, err = s.js.AddConsumer(StreamEvents, &nats.ConsumerConfig{
		Durable:        durable,
		DeliverSubject: nats.NewInbox(),
		FilterSubject:  filter,
		DeliverPolicy:  nats.DeliverAllPolicy,
		AckPolicy:      nats.AckExplicitPolicy,
		MaxDeliver:     3,
	})
	if err != nil {
		return fmt.Errorf("add consumer %s: %w", durable, err)
	}
	return nil
}

func (s *Subscriber) bind(durable, filter string, cb nats.MsgHandler) error {
	if err := s.ensureConsumer(durable, filter); err != nil {
		return err
	}
	sub, err := s.js.Subscribe(filter, cb, nats.Bind(StreamEvents, durable), nats.ManualAck())
	if err != nil {
		return fmt.Errorf("bind %s: %w", durable, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// SubscribeClassifications delivers every classification event to handler.
// Events the handler rejects are redelivered up to three times.
func (s *Subscriber) SubscribeClassifications(ctx context.Context, handler func(ctx context.Context, event *domain.ClassificationEvent) error) error {
	return s.bind(ConsumerAudit, SubjectClassified+".>", func(msg *nats.Msg) {
		var event domain.ClassificationEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			slog.Warn("drop malformed classification event", "subject", msg.Subject, "error", err)
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &event); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
}

// SubscribeBatchReports delivers batch summaries to handler.
func (s *Subscriber) SubscribeBatchReports(ctx context.Context, handler func(ctx context.Context, report *domain.BatchReport) error) error {
	return s.bind(ConsumerBatch, SubjectBatch+".>", func(msg *nats.Msg) {
		var report domain.BatchReport
		if err := json.Unmarshal(msg.Data, &report); err != nil {
			_ = msg.Term()
			return
		}
		if err := handler(ctx, &report); err != nil {
			_ = msg.Nak()
			return
		}
		_ = msg.Ack()
	})
}

// Close stops delivery and drains the connection. Bound consumers are left
// on the server.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
