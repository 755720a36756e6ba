package entities

import (
	"github.com/google/uuid"
	"time"
)

const StatusRecommended = "Recommended Job"

type MutualInterest struct {
	ID          string `gorm:"primaryKey"`
	CandidateID string `gorm:"index"`
	PositionID  string `gorm:"index"`
	CreatedAt   time.Time
	LastUpdated time.Time
	Applied     bool
	Recommended bool
	Status      string
}

func NewRecommendation(candidateID, positionID string, now time.Time) MutualInterest {
	return MutualInterest{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		PositionID:  positionID,
		CreatedAt:   now,
		LastUpdated: now,
		Applied:     false,
		Recommended: true,
		Status:      StatusRecommended,
	}
}
