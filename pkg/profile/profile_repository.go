package profile

import (
	"agri-assistant/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ProfileRepository interface {
		CreateProfile(ctx context.Context, profile *entities.Profile) error
		GetProfileByUserID(ctx context.Context, userID string) (*entities.Profile, error)
		UpdateProfile(ctx context.Context, profile *entities.Profile) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *entities.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, profile *entities.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
