package scan

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/internal/utils/metrics"
	"agri-assistant/internal/utils/storage"
	"agri-assistant/pkg/classifier"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"mime/multipart"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateImageSelected
	StateAnalyzing
	StateUploading
	StateCompleted
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:          "idle",
	StateImageSelected: "image_selected",
	StateAnalyzing:     "analyzing",
	StateUploading:     "uploading",
	StateCompleted:     "completed",
	StateFailed:        "failed",
}

func (s State) String() string {
	return stateNames[s]
}

const scanFolder = "scans"

type (
	Predictor interface {
		Predict(ctx context.Context, image []byte) (classifier.Prediction, error)
	}

	// Workflow drives one crop scan from image selection to a stored result.
	// It is not safe for concurrent use; each request owns its own Workflow.
	Workflow struct {
		predictor Predictor
		s3        storage.AwsS3
		repo      ScanRepository
		log       *logger.Logger

		state       State
		file        *multipart.FileHeader
		data        []byte
		contentType string
		preview     string
		result      *domain.ScanResultResponse
		failure     error
		onChange    func(State)
	}
)

func NewWorkflow(predictor Predictor, s3 storage.AwsS3, repo ScanRepository, log *logger.Logger) *Workflow {
	return &Workflow{
		predictor: predictor,
		s3:        s3,
		repo:      repo,
		log:       log,
	}
}

// OnStateChange registers fn to observe every transition.
func (w *Workflow) OnStateChange(fn func(State)) {
	w.onChange = fn
}

func (w *Workflow) State() State { return w.state }

// Preview is the selected image as a data URL.
func (w *Workflow) Preview() string { return w.preview }

func (w *Workflow) Result() *domain.ScanResultResponse { return w.result }

// Err is the user-facing failure, set only in StateFailed.
func (w *Workflow) Err() error { return w.failure }

func (w *Workflow) busy() bool {
	return w.state == StateAnalyzing || w.state == StateUploading
}

func (w *Workflow) transition(s State) {
	w.state = s
	if w.onChange != nil {
		w.onChange(s)
	}
}

// Select accepts exactly one image file. The previous result, error and
// preview are discarded.
func (w *Workflow) Select(files ...*multipart.FileHeader) error {
	if w.busy() {
		return domain.ErrScanInProgress
	}
	if len(files) != 1 || files[0] == nil {
		return domain.ErrNoImageSelected
	}

	data, err := storage.ReadFile(files[0])
	if err != nil {
		return err
	}
	contentType := storage.DetectContentType(data)
	if !storage.MatchType(contentType, storage.AllowImage...) {
		return domain.ErrInvalidImageFormat
	}

	w.clear()
	w.file = files[0]
	w.data = data
	w.contentType = contentType
	w.preview = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
	w.transition(StateImageSelected)
	return nil
}

// Run classifies, uploads and persists the selected image for userID.
// Any failure ends in StateFailed with one generic message; the cause is
// logged.
func (w *Workflow) Run(ctx context.Context, userID string) (domain.ScanResultResponse, error) {
	if w.state != StateImageSelected {
		if w.busy() {
			return domain.ScanResultResponse{}, domain.ErrScanInProgress
		}
		return domain.ScanResultResponse{}, domain.ErrNoImageSelected
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ScanResultResponse{}, w.fail(ctx, domain.ErrParseUUID)
	}

	w.transition(StateAnalyzing)
	prediction, err := w.predictor.Predict(ctx, w.data)
	if err != nil {
		return domain.ScanResultResponse{}, w.fail(ctx, fmt.Errorf("%w: %v", domain.ErrClassifierFailed, err))
	}

	w.transition(StateUploading)
	scanID := uuid.New()
	objectKey, err := w.s3.UploadFile(scanID.String(), w.file, scanFolder, storage.AllowImage...)
	if err != nil {
		return domain.ScanResultResponse{}, w.fail(ctx, fmt.Errorf("upload scan image: %w", err))
	}

	scan := &entities.ScanResult{
		ID:         scanID,
		UserID:     userUUID,
		ImageKey:   objectKey,
		ImageURL:   w.s3.GetPublicLinkKey(objectKey),
		Disease:    prediction.Disease,
		Confidence: prediction.Confidence,
		Solution:   prediction.Solution,
	}
	if err := w.repo.CreateScanResult(ctx, scan); err != nil {
		if delErr := w.s3.DeleteFile(objectKey); delErr != nil {
			w.log.WarnCtx(ctx, "orphaned scan image", logger.Fields{"key": objectKey, "error": delErr.Error()})
		}
		return domain.ScanResultResponse{}, w.fail(ctx, fmt.Errorf("persist scan result: %w", err))
	}

	res := ToScanResultResponse(scan)
	w.result = &res
	w.transition(StateCompleted)
	metrics.ScansTotal.WithLabelValues(StateCompleted.String()).Inc()
	return res, nil
}

// Reset discards all workflow state. It is refused while a run is in flight.
func (w *Workflow) Reset() error {
	if w.busy() {
		return domain.ErrScanInProgress
	}
	w.clear()
	w.transition(StateIdle)
	return nil
}

func (w *Workflow) clear() {
	w.file = nil
	w.data = nil
	w.contentType = ""
	w.preview = ""
	w.result = nil
	w.failure = nil
}

func (w *Workflow) fail(ctx context.Context, cause error) error {
	w.log.ErrorCtx(ctx, "crop scan failed", logger.Fields{
		"state": w.state.String(),
		"error": cause.Error(),
	})
	w.failure = errors.New(domain.MessageFailedScanCrop)
	w.transition(StateFailed)
	metrics.ScansTotal.WithLabelValues(StateFailed.String()).Inc()
	return w.failure
}

func ConfidencePercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}

func ToScanResultResponse(scan *entities.ScanResult) domain.ScanResultResponse {
	return domain.ScanResultResponse{
		ID:                scan.ID.String(),
		Disease:           scan.Disease,
		Confidence:        scan.Confidence,
		ConfidencePercent: ConfidencePercent(scan.Confidence),
		Solution:          scan.Solution,
		ImageURL:          scan.ImageURL,
		CreatedAt:         scan.CreatedAt,
	}
}
