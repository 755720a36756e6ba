package entities

import (
	"github.com/google/uuid"
	"time"
)

const (
	TitleJobRecommendation = "You Have a New Job Recommendation!"
	TitleJobRemoved        = "Job Post Has Been Removed"
)

type Notification struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Title     string
	Body      string
	Link      string
	CreatedAt time.Time
	Viewed    bool
}

func NewNotification(userID, title, body, link string, now time.Time) Notification {
	return Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Link:      link,
		CreatedAt: now,
	}
}

func NewRecommendationNotification(userID string, position Position, now time.Time) Notification {
	return NewNotification(userID, TitleJobRecommendation,
		position.Name+" at "+position.Company+" matches your profile.",
		position.Link, now)
}

func NewPositionRemovedNotification(userID string, position Position, now time.Time) Notification {
	return NewNotification(userID, TitleJobRemoved,
		"The "+position.Name+" position at "+position.Company+" is no longer available and was removed from your jobs.",
		"", now)
}
