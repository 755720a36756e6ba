package entities

import (
	"gorm.io/datatypes"
	"slices"
	"time"
)

const WorkPrefRemote = "Remote"

type Position struct {
	ID        string `gorm:"primaryKey"`
	Company   string
	Name      string
	Link      string
	Field     string `gorm:"index"`
	Location  string
	WorkPref  datatypes.JSONSlice[string]
	CreatedAt time.Time
}

func (p Position) IsRemote() bool {
	return slices.Contains(p.WorkPref, WorkPrefRemote)
}
