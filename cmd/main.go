package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/clients/mail"
	"github.com/maxaizer/talent-jobs/internal/clients/probe"
	"github.com/maxaizer/talent-jobs/internal/clients/telegram"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/locks"
	"github.com/maxaizer/talent-jobs/internal/logger"
	"github.com/maxaizer/talent-jobs/internal/metrics"
	"github.com/maxaizer/talent-jobs/internal/repositories"
	"github.com/maxaizer/talent-jobs/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
	"time"
)

type store struct {
	users         *repositories.Users
	cachedUsers   *repositories.CachedUsers
	profiles      *repositories.CandidateProfiles
	positions     *repositories.Positions
	interests     *repositories.MutualInterests
	notifications *repositories.Notifications
}

func newLocker(ctx context.Context, cfg config.RedisConfig) locks.Locker {
	if !cfg.Enabled() {
		log.Info("redis is not configured, using in-process job locks")
		return locks.NewLocal()
	}

	client, err := locks.NewRedisClient(ctx, cfg.URL)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeLock).Fatalf("can't connect to redis: %v", err)
	}
	return locks.NewRedis(client)
}

type teamAlerter interface {
	SendText(text string) error
}

// newTeamAlerter returns nil when telegram is not configured.
func newTeamAlerter(cfg config.TelegramConfig) teamAlerter {
	if !cfg.Enabled() {
		return nil
	}

	client, err := telegram.NewClient(cfg.Token, cfg.TeamChatID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("can't create telegram client, team alerts disabled: %v", err)
		return nil
	}
	return client
}

func skipLocked(err error) error {
	if errors.Is(err, locks.ErrLocked) {
		return nil
	}
	return err
}

func runJobs(ctx context.Context, cfg *config.Config, db *store, mailer *mail.Client) *services.Scheduler {

	locker := newLocker(ctx, cfg.Redis)

	sweep := services.NewDeadPositionSweep(db.positions, probe.NewClient(cfg.Jobs.Sweep.ProbeTimeout), mailer,
		newTeamAlerter(cfg.Telegram), locker, cfg.Mail, cfg.Jobs.Sweep)

	engine := services.NewRecommendationEngine(db.profiles, db.positions, db.interests, db.notifications,
		db.cachedUsers, mailer, locker, cfg.Mail, cfg.Jobs.Recommendations)
	reminder := services.NewProfileReminder(db.users, db.profiles, mailer, cfg.Mail)
	gapReport := services.NewCandidateGapReport(db.users, db.profiles, mailer, cfg.Mail)

	scheduler, err := services.NewScheduler(ctx, cfg.Jobs.RunTimeout)
	if err != nil {
		log.Fatalf("can't create scheduler: %v", err)
	}

	jobs := []struct {
		name string
		spec string
		job  services.JobFunc
	}{
		{"candidate-gap-report", cfg.Jobs.GapReport.Schedule, gapReport.Run},
		{"dead-position-sweep", cfg.Jobs.Sweep.Schedule, func(ctx context.Context) error {
			_, err := sweep.Run(ctx)
			return skipLocked(err)
		}},
		{"profile-reminder", cfg.Jobs.Reminder.Schedule, func(ctx context.Context) error {
			_, err := reminder.Run(ctx)
			return err
		}},
		{"recommendation-engine", cfg.Jobs.Recommendations.Schedule, func(ctx context.Context) error {
			_, err := engine.Run(ctx)
			return skipLocked(err)
		}},
	}

	for _, j := range jobs {
		if err = scheduler.AddJob(j.name, j.spec, j.job); err != nil {
			log.Fatalf("can't schedule job: %v", err)
		}
	}

	scheduler.Start()
	return scheduler
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metricsServer := metrics.StartMetricsServer(cfg.Metrics.Address)

	dbContext, err := repositories.NewDbContext(cfg.DB)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bus := EventBus.New()

	users := repositories.NewUsersRepository(dbContext.DB, bus)
	db := &store{
		users:         users,
		cachedUsers:   repositories.NewCachedUsers(users),
		profiles:      repositories.NewCandidateProfilesRepository(dbContext.DB),
		positions:     repositories.NewPositionsRepository(dbContext.DB, bus),
		interests:     repositories.NewMutualInterestsRepository(dbContext.DB),
		notifications: repositories.NewNotificationsRepository(dbContext.DB, bus),
	}

	mailer := mail.NewClient(cfg.Mail.APIKey, cfg.Mail.BaseURL, cfg.Mail.From)
	mailer.SetRateLimit(cfg.Mail.MaxRequestsPerSecond)

	if _, err = services.NewSignupNotifier(bus, db.users, mailer, cfg.Mail); err != nil {
		log.Fatalf("can't create signup notifier: %v", err)
	}
	if _, err = services.NewNotificationMailer(bus, db.notifications, db.cachedUsers, mailer, cfg.Mail); err != nil {
		log.Fatalf("can't create notification mailer: %v", err)
	}

	scheduler := runJobs(ctx, cfg, db, mailer)

	<-ctx.Done()

	log.Info("Shutting down services...")
	scheduler.Stop()
	bus.WaitAsync()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("metrics server shutdown: %v", err)
	}
	log.Info("Services stopped.")
}
