package scan

import (
	"agri-assistant/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ScanRepository interface {
		CreateScanResult(ctx context.Context, scan *entities.ScanResult) error
		GetScanResultByID(ctx context.Context, id string) (*entities.ScanResult, error)
		GetScanResults(ctx context.Context, userID string, page, limit int) ([]*entities.ScanResult, int64, error)
		CountScanResults(ctx context.Context, userID string) (int64, error)
	}

	scanRepository struct {
		db *gorm.DB
	}
)

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) CreateScanResult(ctx context.Context, scan *entities.ScanResult) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *scanRepository) GetScanResultByID(ctx context.Context, id string) (*entities.ScanResult, error) {
	var scan entities.ScanResult
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) GetScanResults(ctx context.Context, userID string, page, limit int) ([]*entities.ScanResult, int64, error) {
	var scans []*entities.ScanResult
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&entities.ScanResult{}).Where("user_id = ?", userID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&scans).Error; err != nil {
		return nil, 0, err
	}

	return scans, count, nil
}

func (r *scanRepository) CountScanResults(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.ScanResult{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
