package repositories

import (
	"context"
	"github.com/maxaizer/talent-jobs/internal/entities"
	"gorm.io/gorm"
)

type CandidateProfiles struct {
	db *gorm.DB
}

func NewCandidateProfilesRepository(db *gorm.DB) *CandidateProfiles {
	return &CandidateProfiles{db: db}
}

func (repo *CandidateProfiles) Add(ctx context.Context, profile entities.CandidateProfile) error {
	return translateError(repo.db.WithContext(ctx).Create(&profile).Error)
}

func (repo *CandidateProfiles) GetAll(ctx context.Context) ([]entities.CandidateProfile, error) {
	var profiles []entities.CandidateProfile
	if err := repo.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *CandidateProfiles) GetIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := repo.db.WithContext(ctx).Model(&entities.CandidateProfile{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
