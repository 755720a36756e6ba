package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/clients/probe"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/locks"
	"github.com/maxaizer/talent-jobs/internal/logger"
	"github.com/maxaizer/talent-jobs/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

const (
	sweepLockName = "dead-position-sweep"
	sweepLockTTL  = 12 * time.Hour
)

type positionStore interface {
	GetAll(ctx context.Context) ([]entities.Position, error)
	RemoveCascade(ctx context.Context, position entities.Position,
		notice func(interest entities.MutualInterest) entities.Notification) ([]entities.MutualInterest, error)
}

type linkProber interface {
	Check(ctx context.Context, link string) probe.Result
}

type UnknownStatusPosition struct {
	Position   entities.Position
	StatusCode int
	Error      string
}

type SweepReport struct {
	Checked          int
	RemovedPositions []entities.Position
	RemovedInterests []entities.MutualInterest
	UnknownStatus    []UnknownStatusPosition
}

func (r SweepReport) templateData() map[string]any {
	return map[string]any{
		"checked":          r.Checked,
		"deletedPositions": positionsTemplateData(r.RemovedPositions),
		"deletedInterests": lo.Map(r.RemovedInterests, func(mi entities.MutualInterest, _ int) map[string]any {
			return map[string]any{
				"id":          mi.ID,
				"candidateId": mi.CandidateID,
				"positionId":  mi.PositionID,
				"status":      mi.Status,
			}
		}),
		"unknownPositions": lo.Map(r.UnknownStatus, func(u UnknownStatusPosition, _ int) map[string]any {
			return map[string]any{
				"company": u.Position.Company,
				"name":    u.Position.Name,
				"link":    u.Position.Link,
				"status":  u.StatusCode,
				"error":   u.Error,
			}
		}),
	}
}

func (r SweepReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dead position sweep: %d checked, %d removed, %d interests removed, %d need review\n",
		r.Checked, len(r.RemovedPositions), len(r.RemovedInterests), len(r.UnknownStatus))

	if len(r.RemovedPositions) > 0 {
		b.WriteString("\nRemoved positions:\n")
		for _, p := range r.RemovedPositions {
			fmt.Fprintf(&b, "- %s, %s (%s)\n", p.Company, p.Name, p.Link)
		}
	}
	if len(r.UnknownStatus) > 0 {
		b.WriteString("\nUnknown status:\n")
		for _, u := range r.UnknownStatus {
			if u.Error != "" {
				fmt.Fprintf(&b, "- %s, %s (%s): %s\n", u.Position.Company, u.Position.Name, u.Position.Link, u.Error)
			} else {
				fmt.Fprintf(&b, "- %s, %s (%s): %d\n", u.Position.Company, u.Position.Name, u.Position.Link, u.StatusCode)
			}
		}
	}
	return b.String()
}

type DeadPositionSweep struct {
	positions positionStore
	prober    linkProber
	mailer    mailSender
	alerter   teamAlerter
	locker    locks.Locker
	mailCfg   config.MailConfig
	cfg       config.SweepConfig
	now       func() time.Time
}

// NewDeadPositionSweep creates the sweep. alerter may be nil.
func NewDeadPositionSweep(positions positionStore, prober linkProber, mailer mailSender, alerter teamAlerter,
	locker locks.Locker, mailCfg config.MailConfig, cfg config.SweepConfig) *DeadPositionSweep {

	return &DeadPositionSweep{
		positions: positions,
		prober:    prober,
		mailer:    mailer,
		alerter:   alerter,
		locker:    locker,
		mailCfg:   mailCfg,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *DeadPositionSweep) Run(ctx context.Context) (*SweepReport, error) {

	release, err := s.locker.Acquire(ctx, sweepLockName, sweepLockTTL)
	if err != nil {
		if errors.Is(err, locks.ErrLocked) {
			log.Warn("dead position sweep is already running, skipping")
		} else {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeLock).Errorf("failed to lock dead position sweep: %v", err)
		}
		return nil, err
	}
	defer release()

	positions, err := s.positions.GetAll(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get positions: %v", err)
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	report := &SweepReport{}
	for _, position := range positions {
		result, err := s.probe(ctx, position.Link)
		if err != nil {
			log.Warnf("dead position sweep interrupted after %d positions: %v", report.Checked, err)
			break
		}
		report.Checked++
		s.handle(ctx, position, result, report)
	}

	log.Infof("dead position sweep checked %d positions, removed %d, %d with unknown status",
		report.Checked, len(report.RemovedPositions), len(report.UnknownStatus))

	reportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
	defer cancel()
	s.sendReport(reportCtx, report)
	return report, nil
}

// probe checks the link and waits at least the minimum probe interval, whichever ends last.
func (s *DeadPositionSweep) probe(ctx context.Context, link string) (probe.Result, error) {
	wait := time.NewTimer(s.cfg.MinProbeInterval)
	defer wait.Stop()

	result := s.prober.Check(ctx, link)

	select {
	case <-wait.C:
		return result, nil
	case <-ctx.Done():
		return result, ctx.Err()
	}
}

func (s *DeadPositionSweep) handle(ctx context.Context, position entities.Position, result probe.Result, report *SweepReport) {

	switch {
	case result.Alive():
		metrics.ProbeStatusCounter.WithLabelValues("alive").Inc()

	case result.Gone():
		metrics.ProbeStatusCounter.WithLabelValues("gone").Inc()
		removed, err := s.positions.RemoveCascade(ctx, position, func(mi entities.MutualInterest) entities.Notification {
			return entities.NewPositionRemovedNotification(mi.CandidateID, position, s.now())
		})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to remove position %s: %v", position.ID, err)
			return
		}
		metrics.RemovedPositionsCounter.Inc()
		report.RemovedPositions = append(report.RemovedPositions, position)
		report.RemovedInterests = append(report.RemovedInterests, removed...)
		log.Infof("position %s (%s) removed with %d mutual interests", position.ID, position.Link, len(removed))

	case result.Responded():
		metrics.ProbeStatusCounter.WithLabelValues("unknown").Inc()
		report.UnknownStatus = append(report.UnknownStatus, UnknownStatusPosition{Position: position, StatusCode: result.StatusCode})

	default:
		metrics.ProbeStatusCounter.WithLabelValues("unreachable").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeProbe).
			Debugf("position %s link is unreachable: %v", position.ID, result.Err)
		if s.cfg.UnreachablePolicy == config.UnreachableReview {
			report.UnknownStatus = append(report.UnknownStatus, UnknownStatusPosition{Position: position, Error: errorText(result.Err)})
		}
	}
}

func (s *DeadPositionSweep) sendReport(ctx context.Context, report *SweepReport) {

	err := s.mailer.Send(ctx, mail.Message{
		To:         s.mailCfg.TeamAddress,
		TemplateID: s.mailCfg.Templates.SweepReport,
		Data:       report.templateData(),
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).Errorf("failed to send sweep report: %v", err)
	}

	if s.alerter == nil {
		return
	}
	if err = s.alerter.SendText(report.String()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("failed to post sweep report: %v", err)
	}
}

func errorText(err error) string {
	if err == nil {
		return "no response"
	}
	return err.Error()
}
