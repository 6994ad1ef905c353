package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventRecommendationsUpdated = "recommendations_updated"

type RecommendationsUpdatedEvent struct {
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	Strategy  string `json:"strategy"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

func (h *Hub) NotifyRecommendationsUpdated(userID uuid.UUID, strategy string, count int) {
	if h == nil || userID == uuid.Nil {
		return
	}

	evt := RecommendationsUpdatedEvent{
		Type:      EventRecommendationsUpdated,
		UserID:    userID.String(),
		Strategy:  strategy,
		Count:     count,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("ws event encode failed", zap.Error(err))
		return
	}
	h.Publish(userID, b)
}
