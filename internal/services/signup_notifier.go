package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/events"
	"github.com/maxaizer/talent-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
	"time"
)

const eventHandlingTimeout = time.Minute

type SignupNotifier struct {
	users  userReader
	mailer mailSender
	cfg    config.MailConfig
}

func NewSignupNotifier(bus EventBus.Bus, users userReader, mailer mailSender, cfg config.MailConfig) (*SignupNotifier, error) {
	n := &SignupNotifier{users: users, mailer: mailer, cfg: cfg}
	if err := bus.SubscribeAsync(events.UserCreatedTopic, n.onUserCreated, false); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *SignupNotifier) onUserCreated(event events.UserCreated) {
	ctx, cancel := context.WithTimeout(context.Background(), eventHandlingTimeout)
	defer cancel()

	if err := n.Notify(ctx, event.UserID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).
			Errorf("signup notification for user %s failed: %v", event.UserID, err)
	}
}

// Notify sends the welcome email and, for candidates, the internal new-candidate alert.
// The user is re-read from the store.
func (n *SignupNotifier) Notify(ctx context.Context, userID string) error {

	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	var templateID string
	switch user.Type {
	case entities.CandidateUser:
		templateID = n.cfg.Templates.CandidateWelcome
	case entities.RecruiterUser:
		templateID = n.cfg.Templates.RecruiterWelcome
	default:
		log.Warnf("user %s has unknown type %q, welcome email skipped", user.ID, user.Type)
		return nil
	}

	var errs []error

	err = n.mailer.Send(ctx, mail.Message{
		To:         user.Email,
		TemplateID: templateID,
		Data: map[string]any{
			"name": user.FirstName,
		},
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("welcome email: %w", err))
	}

	if user.IsCandidate() {
		err = n.mailer.Send(ctx, mail.Message{
			To:         n.cfg.TeamAddress,
			TemplateID: n.cfg.Templates.NewCandidateAlert,
			Data: map[string]any{
				"name":  user.FullName(),
				"email": user.Email,
			},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("new candidate alert: %w", err))
		}
	}

	return errors.Join(errs...)
}
