package entities

import (
	"strings"
	"time"
)

type UserType string

const (
	CandidateUser UserType = "candidate"
	RecruiterUser UserType = "recruiter"
)

type User struct {
	ID          string `gorm:"primaryKey"`
	Email       string
	FirstName   string
	LastName    string
	DisplayName string
	Type        UserType `gorm:"index"`
	CreatedAt   time.Time
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Name is the display name, falling back to the full name.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.FullName()
}

func (u User) IsCandidate() bool {
	return u.Type == CandidateUser
}
