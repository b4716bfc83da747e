package scan

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/internal/utils/storage"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	ScanService interface {
		ScanCrop(ctx context.Context, req domain.ScanCropRequest, userID string) (domain.ScanResultResponse, error)
		GetScanHistory(ctx context.Context, userID string, page, limit int) ([]domain.ScanResultResponse, int64, error)
		GetScanByID(ctx context.Context, id string, userID string) (domain.ScanResultResponse, error)
	}

	scanService struct {
		scanRepository ScanRepository
		predictor      Predictor
		s3             storage.AwsS3
		log            *logger.Logger
	}
)

func NewScanService(scanRepository ScanRepository, predictor Predictor, s3 storage.AwsS3, log *logger.Logger) ScanService {
	return &scanService{
		scanRepository: scanRepository,
		predictor:      predictor,
		s3:             s3,
		log:            log,
	}
}

func (s *scanService) ScanCrop(ctx context.Context, req domain.ScanCropRequest, userID string) (domain.ScanResultResponse, error) {
	wf := NewWorkflow(s.predictor, s.s3, s.scanRepository, s.log)
	if err := wf.Select(req.Image); err != nil {
		return domain.ScanResultResponse{}, err
	}
	return wf.Run(ctx, userID)
}

func (s *scanService) GetScanHistory(ctx context.Context, userID string, page, limit int) ([]domain.ScanResultResponse, int64, error) {
	scans, count, err := s.scanRepository.GetScanResults(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.ScanResultResponse, 0, len(scans))
	for _, scan := range scans {
		response = append(response, ToScanResultResponse(scan))
	}
	return response, count, nil
}

func (s *scanService) GetScanByID(ctx context.Context, id string, userID string) (domain.ScanResultResponse, error) {
	scan, err := s.scanRepository.GetScanResultByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ScanResultResponse{}, domain.ErrScanNotFound
		}
		return domain.ScanResultResponse{}, err
	}

	if scan.UserID.String() != userID {
		return domain.ScanResultResponse{}, domain.ErrUnauthorizedScan
	}

	return ToScanResultResponse(scan), nil
}
