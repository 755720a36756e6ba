package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/logger"
	log "github.com/sirupsen/logrus"
	"time"
)

type ReminderKind int

const (
	NoReminder ReminderKind = iota
	Reminder24Hours
	Reminder72Hours
	Reminder7Days
)

type reminderWindow struct {
	kind      ReminderKind
	from, to  float64 // seconds since signup, both exclusive
	subject   string
	preheader string
	body      string
}

var reminderWindows = []reminderWindow{
	{
		kind:      Reminder24Hours,
		from:      86400,
		to:        172800,
		subject:   "Finish your profile to start getting matched",
		preheader: "It only takes a few minutes.",
		body:      "You signed up yesterday but haven't completed your candidate profile. Recruiters can only match you to open roles once it's done.",
	},
	{
		kind:      Reminder72Hours,
		from:      259200,
		to:        345600,
		subject:   "Your job matches are waiting",
		preheader: "Complete your profile to see them.",
		body:      "New positions are posted every week. Complete your candidate profile so we can start sending you recommendations.",
	},
	{
		kind:      Reminder7Days,
		from:      604800,
		to:        691200,
		subject:   "Still looking for your next role?",
		preheader: "Your profile is one step away.",
		body:      "It's been a week since you joined. Finish your candidate profile and let our recruiters find the right position for you.",
	},
}

// ClassifyReminder picks the reminder for an account of the given age.
// Ages outside all windows get NoReminder.
func ClassifyReminder(elapsed time.Duration) ReminderKind {
	if w, ok := findReminderWindow(elapsed); ok {
		return w.kind
	}
	return NoReminder
}

func findReminderWindow(elapsed time.Duration) (reminderWindow, bool) {
	seconds := elapsed.Seconds()
	for _, w := range reminderWindows {
		if seconds > w.from && seconds < w.to {
			return w, true
		}
	}
	return reminderWindow{}, false
}

type ProfileReminder struct {
	candidates incompleteCandidates
	mailer     mailSender
	cfg        config.MailConfig
	now        func() time.Time
}

func NewProfileReminder(users userLister, profiles profileIDLister, mailer mailSender, cfg config.MailConfig) *ProfileReminder {
	return &ProfileReminder{
		candidates: incompleteCandidates{users: users, profiles: profiles},
		mailer:     mailer,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Run sends the reminder due today to every candidate without a profile.
// It returns the number of reminders sent; per-user failures are logged and skipped.
func (r *ProfileReminder) Run(ctx context.Context) (int, error) {

	candidates, err := r.candidates.load(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load incomplete candidates: %v", err)
		return 0, fmt.Errorf("failed to load incomplete candidates: %w", err)
	}

	now := r.now()
	sent := 0
	for _, user := range candidates {
		window, ok := findReminderWindow(now.Sub(user.CreatedAt))
		if !ok {
			continue
		}
		if err = r.send(ctx, user, window); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).
				Errorf("failed to send profile reminder to user %s: %v", user.ID, err)
			continue
		}
		sent++
	}

	log.Infof("profile reminders sent: %d of %d incomplete candidates", sent, len(candidates))
	return sent, nil
}

func (r *ProfileReminder) send(ctx context.Context, user entities.User, window reminderWindow) error {
	return r.mailer.Send(ctx, mail.Message{
		To:         user.Email,
		TemplateID: r.cfg.Templates.ProfileReminder,
		Data: map[string]any{
			"name":      user.FirstName,
			"subject":   window.subject,
			"preheader": window.preheader,
			"body":      window.body,
		},
	})
}
