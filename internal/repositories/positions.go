package repositories

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/events"
	"gorm.io/gorm"
)

type Positions struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewPositionsRepository(db *gorm.DB, bus EventBus.Bus) *Positions {
	return &Positions{db: db, bus: bus}
}

func (repo *Positions) Add(ctx context.Context, position entities.Position) error {
	return translateError(repo.db.WithContext(ctx).Create(&position).Error)
}

func (repo *Positions) GetAll(ctx context.Context) ([]entities.Position, error) {
	var positions []entities.Position
	if err := repo.db.WithContext(ctx).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// RemoveCascade deletes the position together with every mutual interest referencing it and
// writes one notification per deleted interest, all in a single transaction.
// NotificationCreated events are published only after the commit.
func (repo *Positions) RemoveCascade(ctx context.Context, position entities.Position,
	notice func(interest entities.MutualInterest) entities.Notification) ([]entities.MutualInterest, error) {

	var interests []entities.MutualInterest
	var notifications []entities.Notification

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&interests, "position_id = ?", position.ID).Error; err != nil {
			return fmt.Errorf("failed to load mutual interests: %w", err)
		}

		if len(interests) > 0 {
			if err := tx.Delete(&entities.MutualInterest{}, "position_id = ?", position.ID).Error; err != nil {
				return fmt.Errorf("failed to delete mutual interests: %w", err)
			}
		}

		res := tx.Delete(&entities.Position{}, "id = ?", position.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete position: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		for _, interest := range interests {
			notifications = append(notifications, notice(interest))
		}
		if len(notifications) > 0 {
			if err := tx.Create(&notifications).Error; err != nil {
				return fmt.Errorf("failed to create notifications: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range notifications {
		repo.bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{UserID: n.UserID, NotificationID: n.ID})
	}
	return interests, nil
}
