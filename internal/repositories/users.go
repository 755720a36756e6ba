package repositories

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"github.com/maxaizer/talent-jobs/internal/events"
	"gorm.io/gorm"
)

type Users struct {
	db  *gorm.DB
	bus EventBus.Bus
}

func NewUsersRepository(db *gorm.DB, bus EventBus.Bus) *Users {
	return &Users{db: db, bus: bus}
}

// Add stores the user and publishes UserCreated.
func (repo *Users) Add(ctx context.Context, user entities.User) error {
	if err := repo.db.WithContext(ctx).Create(&user).Error; err != nil {
		return translateError(err)
	}
	repo.bus.Publish(events.UserCreatedTopic, events.UserCreated{UserID: user.ID})
	return nil
}

func (repo *Users) GetByID(ctx context.Context, ID string) (*entities.User, error) {
	var user entities.User
	if err := repo.db.WithContext(ctx).First(&user, "id = ?", ID).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (repo *Users) GetAll(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if err := repo.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
