package entities

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func Test_User_Name_FallsBackToFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", User{FirstName: "Jane", LastName: "Doe"}.Name())
	assert.Equal(t, "JD", User{FirstName: "Jane", LastName: "Doe", DisplayName: "JD"}.Name())
	assert.Equal(t, "Jane", User{FirstName: "Jane"}.Name())
}

func Test_Position_IsRemote(t *testing.T) {
	assert.True(t, Position{WorkPref: []string{"Hybrid", "Remote"}}.IsRemote())
	assert.False(t, Position{WorkPref: []string{"Onsite"}}.IsRemote())
	assert.False(t, Position{Location: "Remote - Austin, TX area"}.IsRemote())
}

func Test_NewRecommendation(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	mi := NewRecommendation("cand", "pos", now)

	assert.NotEmpty(t, mi.ID)
	assert.True(t, mi.Recommended)
	assert.False(t, mi.Applied)
	assert.Equal(t, StatusRecommended, mi.Status)
	assert.Equal(t, now, mi.CreatedAt)
	assert.Equal(t, now, mi.LastUpdated)
}
