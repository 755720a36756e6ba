package entities

import (
	"gorm.io/datatypes"
	"time"
)

// CandidateProfile shares its ID with the owning User. A user is an onboarded candidate
// once the profile exists.
type CandidateProfile struct {
	ID          string `gorm:"primaryKey"`
	Field       string
	Location    string
	Relocate    string
	WorkPref    datatypes.JSONSlice[string]
	RecruiterID string
	CreatedAt   time.Time
}
