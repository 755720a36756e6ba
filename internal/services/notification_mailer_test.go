package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_CallToAction_FallsBackToGenericLabel(t *testing.T) {
	assert.Equal(t, "View Your Jobs", callToAction(entities.TitleJobRemoved))
	assert.Equal(t, "View Message", callToAction("New Message"))
	assert.Equal(t, "View Notification", callToAction("Something else"))
}

func Test_NotificationMailer_Forward_SendsNotificationEmail(t *testing.T) {
	notification := &entities.Notification{ID: "n1", UserID: candidate.ID, Title: entities.TitleJobRemoved,
		Body: "The position was removed", Link: "https://app.example/jobs"}

	notifications := &mockNotifications{}
	notifications.On("GetByID", mock.Anything, candidate.ID, "n1").Return(notification, nil).Once()
	mailer := &fakeMailer{}

	m, err := NewNotificationMailer(EventBus.New(), notifications, &fakeUsers{users: []entities.User{candidate}}, mailer, testMailConfig)
	require.NoError(t, err)

	require.NoError(t, m.Forward(context.Background(), candidate.ID, "n1"))
	notifications.AssertExpectations(t)

	sent := mailer.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@example.com", sent[0].To)
	assert.Equal(t, "tpl-notification", sent[0].TemplateID)
	assert.Equal(t, "Jane", sent[0].Data["name"])
	assert.Equal(t, entities.TitleJobRemoved, sent[0].Data["title"])
	assert.Equal(t, "View Your Jobs", sent[0].Data["cta"])
	assert.Equal(t, "https://app.example/jobs", sent[0].Data["link"])
}

func Test_NotificationMailer_Forward_SkipsRecommendations(t *testing.T) {
	notification := &entities.Notification{ID: "n2", UserID: candidate.ID, Title: entities.TitleJobRecommendation}

	notifications := &mockNotifications{}
	notifications.On("GetByID", mock.Anything, candidate.ID, "n2").Return(notification, nil)
	mailer := &fakeMailer{}

	m, err := NewNotificationMailer(EventBus.New(), notifications, &fakeUsers{}, mailer, testMailConfig)
	require.NoError(t, err)

	require.NoError(t, m.Forward(context.Background(), candidate.ID, "n2"))
	assert.Empty(t, mailer.sent())
}

func Test_NotificationMailer_ReactsToNotificationCreatedEvent(t *testing.T) {
	notification := &entities.Notification{ID: "n3", UserID: candidate.ID, Title: "Interview Requested"}

	notifications := &mockNotifications{}
	notifications.On("GetByID", mock.Anything, candidate.ID, "n3").Return(notification, nil)
	mailer := &fakeMailer{}
	bus := EventBus.New()

	_, err := NewNotificationMailer(bus, notifications, &fakeUsers{users: []entities.User{candidate}}, mailer, testMailConfig)
	require.NoError(t, err)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{UserID: candidate.ID, NotificationID: "n3"})
	bus.WaitAsync()

	sent := mailer.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "View Interview", sent[0].Data["cta"])
}
