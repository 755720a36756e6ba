package events

var NotificationCreatedTopic = "NotificationCreatedEvent"

type NotificationCreated struct {
	UserID         string
	NotificationID string
}
