package services

import (
	"context"
	"errors"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

func Test_ClassifyReminder(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		expected ReminderKind
	}{
		{elapsed: 3600 * time.Second, expected: NoReminder},
		{elapsed: 86400 * time.Second, expected: NoReminder},
		{elapsed: 90000 * time.Second, expected: Reminder24Hours},
		{elapsed: 172800 * time.Second, expected: NoReminder},
		{elapsed: 200000 * time.Second, expected: NoReminder},
		{elapsed: 259200 * time.Second, expected: NoReminder},
		{elapsed: 300000 * time.Second, expected: Reminder72Hours},
		{elapsed: 345600 * time.Second, expected: NoReminder},
		{elapsed: 650000 * time.Second, expected: Reminder7Days},
		{elapsed: 691200 * time.Second, expected: NoReminder},
		{elapsed: 30 * 24 * time.Hour, expected: NoReminder},
	}

	for _, tt := range tests {
		t.Run(tt.elapsed.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyReminder(tt.elapsed))
		})
	}
}

func Test_ProfileReminder_Run_RemindsOnlyIncompleteCandidatesInWindow(t *testing.T) {
	users := &fakeUsers{users: []entities.User{
		{ID: "day1", Email: "day1@example.com", FirstName: "Ann", Type: entities.CandidateUser, CreatedAt: fixedNow.Add(-25 * time.Hour)},
		{ID: "day3", Email: "day3@example.com", FirstName: "Ben", Type: entities.CandidateUser, CreatedAt: fixedNow.Add(-80 * time.Hour)},
		{ID: "day2", Email: "day2@example.com", FirstName: "Cat", Type: entities.CandidateUser, CreatedAt: fixedNow.Add(-50 * time.Hour)},
		{ID: "done", Email: "done@example.com", FirstName: "Dan", Type: entities.CandidateUser, CreatedAt: fixedNow.Add(-25 * time.Hour)},
		{ID: "rec", Email: "rec@example.com", FirstName: "Eve", Type: entities.RecruiterUser, CreatedAt: fixedNow.Add(-25 * time.Hour)},
	}}
	profiles := &fakeProfiles{profiles: []entities.CandidateProfile{{ID: "done"}}}
	mailer := &fakeMailer{}

	reminder := NewProfileReminder(users, profiles, mailer, testMailConfig)
	reminder.now = func() time.Time { return fixedNow }

	sent, err := reminder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	messages := mailer.sent()
	require.Len(t, messages, 2)
	assert.Equal(t, "day1@example.com", messages[0].To)
	assert.Equal(t, "tpl-reminder", messages[0].TemplateID)
	assert.Equal(t, "Ann", messages[0].Data["name"])
	assert.Equal(t, reminderWindows[0].subject, messages[0].Data["subject"])
	assert.Equal(t, "day3@example.com", messages[1].To)
	assert.Equal(t, reminderWindows[1].subject, messages[1].Data["subject"])
}

func Test_ProfileReminder_Run_FailedSendDoesNotStopOthers(t *testing.T) {
	users := &fakeUsers{users: []entities.User{
		{ID: "a", Email: "a@example.com", Type: entities.CandidateUser, CreatedAt: fixedNow.Add(-25 * time.Hour)},
		{ID: "b", Email: "b@example.com", Type: entities.CandidateUser, CreatedAt: fixedNow.Add(-25 * time.Hour)},
	}}
	mailer := &fakeMailer{failFor: map[string]error{"a@example.com": errors.New("rejected")}}

	reminder := NewProfileReminder(users, &fakeProfiles{}, mailer, testMailConfig)
	reminder.now = func() time.Time { return fixedNow }

	sent, err := reminder.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, "b@example.com", mailer.sent()[0].To)
}
