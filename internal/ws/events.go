package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Event is the frame pushed to websocket clients.
type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Publish encodes an event and broadcasts it. It never blocks the caller.
func (h *Hub) Publish(event string, payload any) {
	if h == nil || event == "" {
		return
	}

	b, err := json.Marshal(Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Warn("encode event failed", zap.String("event", event), zap.Error(err))
		return
	}
	h.Broadcast(b)
}
