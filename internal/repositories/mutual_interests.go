package repositories

import (
	"context"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MutualInterests struct {
	db *gorm.DB
}

func NewMutualInterestsRepository(db *gorm.DB) *MutualInterests {
	return &MutualInterests{db: db}
}

func (repo *MutualInterests) Add(ctx context.Context, interest entities.MutualInterest) error {
	return translateError(repo.db.WithContext(ctx).Create(&interest).Error)
}

// AddIfAbsent inserts the interest unless the (candidate, position) pair already exists.
// It reports whether a row was created.
func (repo *MutualInterests) AddIfAbsent(ctx context.Context, interest entities.MutualInterest) (bool, error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "position_id"}},
			DoNothing: true,
		}).
		Create(&interest)
	if res.Error != nil {
		return false, translateError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (repo *MutualInterests) GetAll(ctx context.Context) ([]entities.MutualInterest, error) {
	var interests []entities.MutualInterest
	if err := repo.db.WithContext(ctx).Find(&interests).Error; err != nil {
		return nil, err
	}
	return interests, nil
}

func (repo *MutualInterests) GetByPosition(ctx context.Context, positionID string) ([]entities.MutualInterest, error) {
	var interests []entities.MutualInterest
	if err := repo.db.WithContext(ctx).Find(&interests, "position_id = ?", positionID).Error; err != nil {
		return nil, err
	}
	return interests, nil
}
