package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/talent-jobs/internal/config"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(cfg config.DBConfig) (*DbContext, error) {

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.ConnectionString)
	case config.DriverSqlite, "":
		dialector = sqlite.Open(cfg.ConnectionString)
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	models := map[string]any{
		"User":             entities.User{},
		"CandidateProfile": entities.CandidateProfile{},
		"Position":         entities.Position{},
		"MutualInterest":   entities.MutualInterest{},
		"Notification":     entities.Notification{},
	}

	for name, model := range models {
		if err := c.DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", name, err)
		}
	}

	if err := c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_mutual_interest_pair " +
		"ON mutual_interests (candidate_id, position_id)").Error; err != nil {
		return fmt.Errorf("failed to create mutual interest index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
