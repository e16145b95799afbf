package kafka

import "time"

// NotificationEvent is the payload consumed by the notification delivery
// service. Category is one of Profit, Withdrawal, License.
type NotificationEvent struct {
	ClientID string    `json:"client_id"`
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
}

type NotificationPublisher interface {
	PublishNotification(event NotificationEvent) error
}
