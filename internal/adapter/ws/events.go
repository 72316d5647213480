package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants pushed to dashboard clients.
const (
	EventRunCreated         = "run.created"
	EventRunUpdated         = "run.updated"
	EventAnalyticsRefreshed = "analytics.refreshed"
)

// AnalyticsRefreshedEvent tells clients their cached reports are stale and
// analytics queries should be re-fetched.
type AnalyticsRefreshedEvent struct {
	Reason string `json:"reason"` // e.g. "result_applied"
}

// BroadcastEvent marshals payload and broadcasts it under the given type.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("event marshal failed", "type", eventType, "error", err)
		return
	}
	h.Broadcast(ctx, Message{Type: eventType, Payload: data})
}
