package dto

import "time"

const (
	EventNewOrder        = "newOrder"
	EventTrackingUpdated = "tracking_updated"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type TrackingUpdatedEvent struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
	Status      string `json:"status"`
}

// Notification is a consumed broker event as shown on the admin feed.
type Notification struct {
	EventType  string      `json:"eventType"`
	Data       interface{} `json:"data"`
	ReceivedAt time.Time   `json:"receivedAt"`
}
