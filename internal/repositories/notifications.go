package repositories

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/events"
	"gorm.io/gorm"
)

type Notifications struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewNotificationsRepository(db *gorm.DB, bus EventBus.Bus) *Notifications {
	return &Notifications{db: db, bus: bus}
}

// Add stores the notification and publishes NotificationCreated.
func (repo *Notifications) Add(ctx context.Context, notification entities.Notification) error {
	if err := repo.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return translateError(err)
	}
	repo.bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{
		UserID:         notification.UserID,
		NotificationID: notification.ID,
	})
	return nil
}

func (repo *Notifications) GetByID(ctx context.Context, userID, ID string) (*entities.Notification, error) {
	var notification entities.Notification
	if err := repo.db.WithContext(ctx).First(&notification, "user_id = ? AND id = ?", userID, ID).Error; err != nil {
		return nil, translateError(err)
	}
	return &notification, nil
}

func (repo *Notifications) GetByUser(ctx context.Context, userID string) ([]entities.Notification, error) {
	var notifications []entities.Notification
	if err := repo.db.WithContext(ctx).Order("created_at").Find(&notifications, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
