package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessScanCrop       = "crop scanned successfully"
	MessageSuccessGetScanHistory = "scan history retrieved successfully"
	MessageSuccessGetScan        = "scan retrieved successfully"

	// shown for every scan failure, whatever the cause
	MessageFailedScanCrop       = "Failed to analyze the image. Please try again."
	MessageFailedGetScanHistory = "failed to retrieve scan history"
	MessageFailedGetScan        = "failed to retrieve scan"

	ErrScanNotFound        = errors.New("scan not found")
	ErrInvalidImageFormat  = errors.New("invalid image format")
	ErrNoImageSelected     = errors.New("no image selected")
	ErrScanInProgress      = errors.New("scan already in progress")
	ErrUnauthorizedScan    = errors.New("unauthorized access to scan")
	ErrClassifierFailed    = errors.New("disease classification failed")
	ErrClassifierNotLoaded = errors.New("classifier model not loaded")
)

type (
	ScanCropRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ScanResultResponse struct {
		ID                string    `json:"id"`
		Disease           string    `json:"disease"`
		Confidence        float64   `json:"confidence"`
		ConfidencePercent int       `json:"confidence_percent"`
		Solution          string    `json:"solution"`
		ImageURL          string    `json:"image_url"`
		CreatedAt         time.Time `json:"created_at"`
	}
)
