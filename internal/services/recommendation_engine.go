package services

import (
	"context"
	"errors"
	"fmt"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/locks"
	"github.com/maxaizer/talent-jobs/internal/logger"
	"github.com/maxaizer/talent-jobs/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"slices"
	"strings"
	"sync/atomic"
	"time"
)

const (
	recommendationsLockName = "recommendation-engine"
	recommendationsLockTTL  = 6 * time.Hour
)

type positionLister interface {
	GetAll(ctx context.Context) ([]entities.Position, error)
}

type interestStore interface {
	GetAll(ctx context.Context) ([]entities.MutualInterest, error)
	AddIfAbsent(ctx context.Context, interest entities.MutualInterest) (bool, error)
}

type interestKey struct {
	candidateID string
	positionID  string
}

type RecommendationSummary struct {
	Candidates  int
	Recommended int
	Failed      int
}

type RecommendationEngine struct {
	profiles      profileLister
	positions     positionLister
	interests     interestStore
	notifications notificationWriter
	users         userReader
	mailer        mailSender
	locker        locks.Locker
	mailCfg       config.MailConfig
	cfg           config.RecommendationsConfig
	now           func() time.Time
}

func NewRecommendationEngine(profiles profileLister, positions positionLister, interests interestStore,
	notifications notificationWriter, users userReader, mailer mailSender, locker locks.Locker,
	mailCfg config.MailConfig, cfg config.RecommendationsConfig) *RecommendationEngine {

	return &RecommendationEngine{
		profiles:      profiles,
		positions:     positions,
		interests:     interests,
		notifications: notifications,
		users:         users,
		mailer:        mailer,
		locker:        locker,
		mailCfg:       mailCfg,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (e *RecommendationEngine) Run(ctx context.Context) (RecommendationSummary, error) {

	release, err := e.locker.Acquire(ctx, recommendationsLockName, recommendationsLockTTL)
	if err != nil {
		if errors.Is(err, locks.ErrLocked) {
			log.Warn("recommendation engine is already running, skipping")
		} else {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeLock).Errorf("failed to lock recommendation engine: %v", err)
		}
		return RecommendationSummary{}, err
	}
	defer release()

	profiles, positions, interests, err := e.load(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load recommendation data: %v", err)
		return RecommendationSummary{}, err
	}

	linked := lo.SliceToMap(interests, func(mi entities.MutualInterest) (interestKey, struct{}) {
		return interestKey{candidateID: mi.CandidateID, positionID: mi.PositionID}, struct{}{}
	})

	slices.SortFunc(profiles, func(a, b entities.CandidateProfile) int {
		return strings.Compare(a.ID, b.ID)
	})

	var recommended, failed atomic.Int64
	workers := pool.New().WithMaxGoroutines(max(e.cfg.Workers, 1))

	for _, profile := range profiles {
		workers.Go(func() {
			isLinked := func(positionID string) bool {
				_, ok := linked[interestKey{candidateID: profile.ID, positionID: positionID}]
				return ok
			}
			created, err := e.recommend(ctx, profile, positions, isLinked)
			recommended.Add(int64(created))
			if err != nil {
				failed.Add(1)
				log.Errorf("recommendations for candidate %s failed: %v", profile.ID, err)
			}
		})
	}
	workers.Wait()

	summary := RecommendationSummary{
		Candidates:  len(profiles),
		Recommended: int(recommended.Load()),
		Failed:      int(failed.Load()),
	}
	log.Infof("recommendation run finished: %d candidates, %d recommendations, %d failed",
		summary.Candidates, summary.Recommended, summary.Failed)
	return summary, nil
}

func (e *RecommendationEngine) load(ctx context.Context) ([]entities.CandidateProfile, []entities.Position,
	[]entities.MutualInterest, error) {

	profiles, err := e.profiles.GetAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get candidate profiles: %w", err)
	}
	positions, err := e.positions.GetAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get positions: %w", err)
	}
	interests, err := e.interests.GetAll(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get mutual interests: %w", err)
	}
	return profiles, positions, interests, nil
}

// recommend creates the recommendations for one candidate and returns how many were created.
func (e *RecommendationEngine) recommend(ctx context.Context, profile entities.CandidateProfile,
	positions []entities.Position, isLinked func(positionID string) bool) (int, error) {

	matches := MatchPositions(profile, positions, isLinked, e.cfg.MaxPerCandidate)
	if len(matches) == 0 {
		return 0, nil
	}

	now := e.now()
	var created []entities.Position
	var errs []error

	for _, position := range matches {
		ok, err := e.interests.AddIfAbsent(ctx, entities.NewRecommendation(profile.ID, position.ID, now))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to create recommendation %s/%s: %v", profile.ID, position.ID, err)
			errs = append(errs, err)
			continue
		}
		if !ok {
			log.Debugf("candidate %s is already linked to position %s", profile.ID, position.ID)
			continue
		}
		created = append(created, position)
		metrics.RecommendationsCounter.Inc()

		if err = e.notifications.Add(ctx, entities.NewRecommendationNotification(profile.ID, position, now)); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to notify candidate %s about position %s: %v", profile.ID, position.ID, err)
			errs = append(errs, err)
		}
	}

	if len(created) > 0 {
		if err := e.sendDigest(ctx, profile.ID, created); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeMailApi).
				Errorf("failed to send recommendations digest to candidate %s: %v", profile.ID, err)
			errs = append(errs, err)
		}
	}

	return len(created), errors.Join(errs...)
}

func (e *RecommendationEngine) sendDigest(ctx context.Context, candidateID string, positions []entities.Position) error {

	user, err := e.users.GetByID(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	return e.mailer.Send(ctx, mail.Message{
		To:         user.Email,
		TemplateID: e.mailCfg.Templates.Recommendations,
		Data: map[string]any{
			"name":      user.FirstName,
			"positions": positionsTemplateData(positions),
		},
	})
}

func positionsTemplateData(positions []entities.Position) []map[string]any {
	return lo.Map(positions, func(p entities.Position, _ int) map[string]any {
		return map[string]any{
			"company": p.Company,
			"name":    p.Name,
			"link":    p.Link,
		}
	})
}
