package services

import (
	"github.com/maxaizer/talent-jobs/internal/entities"
	"slices"
	"strings"
)

// relocation answers that make any remote-capable position location compatible
var openToRelocation = []string{
	"Yes - open to relocation",
	"Yes - within my current state",
}

// MatchPositions returns, in the given order, at most limit positions that fit the candidate
// and are not linked to them yet.
func MatchPositions(candidate entities.CandidateProfile, positions []entities.Position,
	isLinked func(positionID string) bool, limit int) []entities.Position {

	var matched []entities.Position
	for _, position := range positions {
		if len(matched) >= limit {
			break
		}
		if isLinked != nil && isLinked(position.ID) {
			continue
		}
		if position.Field != candidate.Field {
			continue
		}
		if !isLocationCompatible(candidate, position) {
			continue
		}
		matched = append(matched, position)
	}
	return matched
}

func isLocationCompatible(candidate entities.CandidateProfile, position entities.Position) bool {
	if !position.IsRemote() {
		return strings.Contains(position.Location, candidate.Location)
	}
	if slices.Contains(openToRelocation, candidate.Relocate) {
		return true
	}
	for _, pref := range candidate.WorkPref {
		if slices.Contains(position.WorkPref, pref) {
			return true
		}
	}
	return false
}
