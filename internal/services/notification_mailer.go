package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/events"
	"github.com/maxaizer/talent-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
)

const defaultCallToAction = "View Notification"

var callToActions = map[string]string{
	entities.TitleJobRemoved:     "View Your Jobs",
	"New Message":                "View Message",
	"Application Status Updated": "View Application",
	"Interview Requested":        "View Interview",
	"Your Profile Was Viewed":    "View Profile",
}

func callToAction(title string) string {
	if label, ok := callToActions[title]; ok {
		return label
	}
	return defaultCallToAction
}

type NotificationMailer struct {
	notifications notificationReader
	users         userReader
	mailer        mailSender
	cfg           config.MailConfig
}

func NewNotificationMailer(bus EventBus.Bus, notifications notificationReader, users userReader,
	mailer mailSender, cfg config.MailConfig) (*NotificationMailer, error) {

	m := &NotificationMailer{notifications: notifications, users: users, mailer: mailer, cfg: cfg}
	if err := bus.SubscribeAsync(events.NotificationCreatedTopic, m.onNotificationCreated, false); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *NotificationMailer) onNotificationCreated(event events.NotificationCreated) {
	ctx, cancel := context.WithTimeout(context.Background(), eventHandlingTimeout)
	defer cancel()

	if err := m.Forward(ctx, event.UserID, event.NotificationID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).
			Errorf("failed to forward notification %s of user %s: %v", event.NotificationID, event.UserID, err)
	}
}

// Forward emails the notification to its owner. Job recommendation notifications stay in-app only.
func (m *NotificationMailer) Forward(ctx context.Context, userID, notificationID string) error {

	notification, err := m.notifications.GetByID(ctx, userID, notificationID)
	if err != nil {
		return fmt.Errorf("failed to get notification: %w", err)
	}

	if notification.Title == entities.TitleJobRecommendation {
		return nil
	}

	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return m.mailer.Send(ctx, mail.Message{
		To:         user.Email,
		TemplateID: m.cfg.Templates.Notification,
		Data: map[string]any{
			"name":  user.FirstName,
			"title": notification.Title,
			"body":  notification.Body,
			"link":  notification.Link,
			"cta":   callToAction(notification.Title),
		},
	})
}
