package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/nats"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/metrics"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
)

// wsMessage is sent by clients.
//
//	{"action":"classify","vertices_text":"0 0\n4 0\n4 4","point":{"x":1,"y":1}}
//	{"action":"subscribe"}   relay every classification made by any client
//	{"action":"unsubscribe"}
type wsMessage struct {
	Action string `json:"action"`
	polygonInput
	Point *domain.Point `json:"point"`
}

type wsReply struct {
	Type           string                  `json:"type"` // classification, event, status, error
	Classification *ClassificationResponse `json:"classification,omitempty"`
	Event          json.RawMessage         `json:"event,omitempty"`
	Status         string                  `json:"status,omitempty"`
	Error          string                  `json:"error,omitempty"`
	Line           int                     `json:"line,omitempty"`
}

// WebSocketHandler classifies points sent over the socket and optionally
// relays the live classification feed from NATS.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		log := slog.Default().With("remote", remoteAddr)
		log.Info("ws client connected")

		var mu sync.Mutex
		write := func(r wsReply) error {
			data, err := json.Marshal(r)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		var live *nats.Subscription

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		ctx := context.Background()
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = write(wsReply{Type: "error", Error: "invalid JSON"})
				continue
			}

			switch m.Action {
			case "classify":
				_ = write(wsClassify(ctx, deps, m))

			case "subscribe":
				if deps.NATS == nil {
					_ = write(wsReply{Type: "error", Error: "live feed not available"})
					continue
				}
				if live != nil {
					_ = write(wsReply{Type: "status", Status: "already subscribed"})
					continue
				}
				live, err = deps.NATS.Subscribe(natsadapter.SubjectLive, func(msg *nats.Msg) {
					_ = write(wsReply{Type: "event", Event: json.RawMessage(msg.Data)})
				})
				if err != nil {
					live = nil
					_ = write(wsReply{Type: "error", Error: "subscribe failed: " + err.Error()})
					continue
				}
				_ = write(wsReply{Type: "status", Status: "subscribed"})

			case "unsubscribe":
				if live == nil {
					_ = write(wsReply{Type: "error", Error: "not subscribed"})
					continue
				}
				_ = live.Unsubscribe()
				live = nil
				_ = write(wsReply{Type: "status", Status: "unsubscribed"})

			default:
				_ = write(wsReply{Type: "error", Error: "unknown action: " + m.Action})
			}
		}

		close(done)
		if live != nil {
			_ = live.Unsubscribe()
		}
		log.Info("ws client disconnected")
	}
}

func wsClassify(ctx context.Context, deps *Dependencies, m wsMessage) wsReply {
	if m.Point == nil {
		return wsReply{Type: "error", Error: "point is required"}
	}
	if err := m.Point.Validate(); err != nil {
		return wsReply{Type: "error", Error: err.Error()}
	}
	vertices, err := m.resolve(ctx, deps.Inspector)
	if err != nil {
		reply := wsReply{Type: "error", Error: err.Error()}
		var pe *vertexparse.ParseError
		if errors.As(err, &pe) {
			reply.Line = pe.Line
		}
		return reply
	}
	q := usecases.Query{Source: usecases.SourceWS}
	resp := newClassificationResponse(deps.Inspector.ClassifyFor(ctx, q, vertices, *m.Point), *m.Point, len(vertices))
	return wsReply{Type: "classification", Classification: &resp}
}
