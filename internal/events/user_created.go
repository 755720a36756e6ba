package events

var UserCreatedTopic = "UserCreatedEvent"

type UserCreated struct {
	UserID string
}
