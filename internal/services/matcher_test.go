package services

import (
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"testing"
)

func positionIDs(positions []entities.Position) []string {
	return lo.Map(positions, func(p entities.Position, _ int) string { return p.ID })
}

func Test_MatchPositions_LocationIsSubstringOfPositionLocation(t *testing.T) {
	candidate := entities.CandidateProfile{ID: "c", Field: "Engineering", Location: "Austin"}
	positions := []entities.Position{
		{ID: "p1", Field: "Engineering", Location: "Austin, TX"},
		{ID: "p2", Field: "Engineering", Location: "Dallas, TX"},
		{ID: "p3", Field: "Sales", Location: "Austin, TX"},
		{ID: "p4", Field: "Engineering", Location: "Remote - Austin, TX area"},
	}

	matched := MatchPositions(candidate, positions, nil, 3)

	assert.Equal(t, []string{"p1", "p4"}, positionIDs(matched))
}

func Test_MatchPositions_RemotePosition(t *testing.T) {
	remote := entities.Position{ID: "p1", Field: "Engineering", Location: "Chicago", WorkPref: []string{"Remote"}}

	tests := []struct {
		name      string
		candidate entities.CandidateProfile
		expected  bool
	}{
		{
			name:      "open to relocation",
			candidate: entities.CandidateProfile{Field: "Engineering", Location: "Austin", Relocate: "Yes - open to relocation"},
			expected:  true,
		},
		{
			name:      "relocation within state",
			candidate: entities.CandidateProfile{Field: "Engineering", Location: "Austin", Relocate: "Yes - within my current state"},
			expected:  true,
		},
		{
			name:      "shared work preference",
			candidate: entities.CandidateProfile{Field: "Engineering", Location: "Austin", Relocate: "No", WorkPref: []string{"Hybrid", "Remote"}},
			expected:  true,
		},
		{
			name:      "no relocation and no shared preference",
			candidate: entities.CandidateProfile{Field: "Engineering", Location: "Austin", Relocate: "No", WorkPref: []string{"Onsite"}},
			expected:  false,
		},
		{
			name:      "no preferences",
			candidate: entities.CandidateProfile{Field: "Engineering", Location: "Austin"},
			expected:  false,
		},
		{
			name:      "location alone is not enough",
			candidate: entities.CandidateProfile{Field: "Engineering", Location: "Chicago"},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := MatchPositions(tt.candidate, []entities.Position{remote}, nil, 3)
			assert.Equal(t, tt.expected, len(matched) == 1)
		})
	}
}

func Test_MatchPositions_LimitsAndKeepsOrder(t *testing.T) {
	candidate := entities.CandidateProfile{ID: "c", Field: "Engineering", Location: "NYC"}
	positions := []entities.Position{
		{ID: "p1", Field: "Engineering", Location: "NYC"},
		{ID: "p2", Field: "Engineering", Location: "NYC"},
		{ID: "p3", Field: "Engineering", Location: "NYC"},
		{ID: "p4", Field: "Engineering", Location: "NYC"},
		{ID: "p5", Field: "Engineering", Location: "NYC"},
	}

	matched := MatchPositions(candidate, positions, nil, 3)

	assert.Equal(t, []string{"p1", "p2", "p3"}, positionIDs(matched))
}

func Test_MatchPositions_SkipsLinkedPositions(t *testing.T) {
	candidate := entities.CandidateProfile{ID: "c", Field: "Engineering", Location: "NYC"}
	positions := []entities.Position{
		{ID: "p1", Field: "Engineering", Location: "NYC"},
		{ID: "p2", Field: "Engineering", Location: "NYC"},
	}

	matched := MatchPositions(candidate, positions, func(id string) bool { return id == "p1" }, 3)

	assert.Equal(t, []string{"p2"}, positionIDs(matched))
}
