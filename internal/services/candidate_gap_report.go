package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
)

type CandidateGapReport struct {
	candidates incompleteCandidates
	mailer     mailSender
	cfg        config.MailConfig
}

func NewCandidateGapReport(users userLister, profiles profileIDLister, mailer mailSender, cfg config.MailConfig) *CandidateGapReport {
	return &CandidateGapReport{
		candidates: incompleteCandidates{users: users, profiles: profiles},
		mailer:     mailer,
		cfg:        cfg,
	}
}

// Run emails the team the names of candidates who never completed a profile.
// The report is sent even when the list is empty.
func (r *CandidateGapReport) Run(ctx context.Context) error {

	candidates, err := r.candidates.load(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load incomplete candidates: %v", err)
		return fmt.Errorf("failed to load incomplete candidates: %w", err)
	}

	names := lo.Map(candidates, func(user entities.User, _ int) string {
		return user.Name()
	})

	err = r.mailer.Send(ctx, mail.Message{
		To:         r.cfg.TeamAddress,
		TemplateID: r.cfg.Templates.GapReport,
		Data: map[string]any{
			"name": strings.Join(names, ", "),
		},
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).Errorf("failed to send candidate gap report: %v", err)
		return err
	}

	log.Infof("candidate gap report sent, %d incomplete candidates", len(candidates))
	return nil
}
