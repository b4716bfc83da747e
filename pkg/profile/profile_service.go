package profile

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/internal/utils/storage"
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const imageFolder = "profiles"

type (
	ProfileService interface {
		GetProfile(ctx context.Context, user domain.SessionUser) (domain.ProfileResponse, error)
		CreateProfile(ctx context.Context, req domain.CreateProfileRequest) error
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, user domain.SessionUser) (domain.ProfileResponse, error)
		UploadProfileImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error)
		UpdateProfileImage(ctx context.Context, req domain.UploadProfileImageRequest, user domain.SessionUser) (domain.ProfileResponse, error)
		GetStats(ctx context.Context, userID string) (domain.ProfileStatsResponse, error)
	}

	ScanCounter interface {
		CountScanResults(ctx context.Context, userID string) (int64, error)
	}

	TurnCounter interface {
		CountTurns(ctx context.Context, userID string) (int64, error)
	}

	PostCounter interface {
		CountPosts(ctx context.Context, userID string) (int64, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		s3                storage.AwsS3
		scans             ScanCounter
		turns             TurnCounter
		posts             PostCounter
	}
)

func NewProfileService(
	profileRepository ProfileRepository,
	s3 storage.AwsS3,
	scans ScanCounter,
	turns TurnCounter,
	posts PostCounter,
) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		s3:                s3,
		scans:             scans,
		turns:             turns,
		posts:             posts,
	}
}

// GetProfile returns the stored profile, or an unsaved default built from
// the session user when there is none yet.
func (s *profileService) GetProfile(ctx context.Context, user domain.SessionUser) (domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfileByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{
				ID:        user.ID,
				UserID:    user.ID,
				Name:      user.Name,
				Persisted: false,
				CreatedAt: user.CreatedAt,
			}, nil
		}
		return domain.ProfileResponse{}, err
	}
	return toProfileResponse(profile), nil
}

func (s *profileService) CreateProfile(ctx context.Context, req domain.CreateProfileRequest) error {
	userUUID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.profileRepository.CreateProfile(ctx, &entities.Profile{
		ID:              userUUID,
		UserID:          userUUID,
		Name:            req.Name,
		Location:        req.Location,
		Phone:           req.Phone,
		ProfileImageURL: req.ProfileImageURL,
	})
}

func (s *profileService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, user domain.SessionUser) (domain.ProfileResponse, error) {
	return s.upsert(ctx, user, func(p *entities.Profile) {
		if req.Name != "" {
			p.Name = req.Name
		}
		p.Bio = req.Bio
		p.Location = req.Location
		p.Phone = req.Phone
	})
}

func (s *profileService) UploadProfileImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error) {
	objectKey, err := s.s3.UploadFile("profile_"+userID, image, imageFolder, storage.AllowImage...)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

// UpdateProfileImage overwrites the stored object in place when the profile
// already has one; otherwise it uploads under profile_<userID>.
func (s *profileService) UpdateProfileImage(ctx context.Context, req domain.UploadProfileImageRequest, user domain.SessionUser) (domain.ProfileResponse, error) {
	current, err := s.GetProfile(ctx, user)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	var imageURL string
	if key := s.s3.GetObjectKeyFromLink(current.ProfileImageURL); current.Persisted && key != "" {
		key, err = s.s3.UpdateFile(key, req.Image, storage.AllowImage...)
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		imageURL = s.s3.GetPublicLinkKey(key)
	} else {
		imageURL, err = s.UploadProfileImage(ctx, user.ID, req.Image)
		if err != nil {
			return domain.ProfileResponse{}, err
		}
	}

	return s.upsert(ctx, user, func(p *entities.Profile) {
		p.ProfileImageURL = imageURL
	})
}

// upsert applies edit to the user's profile, creating it on first edit.
// Only the owner reaches this path; user comes from the session.
func (s *profileService) upsert(ctx context.Context, user domain.SessionUser, edit func(p *entities.Profile)) (domain.ProfileResponse, error) {
	userUUID, err := uuid.Parse(user.ID)
	if err != nil {
		return domain.ProfileResponse{}, domain.ErrParseUUID
	}

	profile, err := s.profileRepository.GetProfileByUserID(ctx, user.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = &entities.Profile{ID: userUUID, UserID: userUUID, Name: user.Name}
		edit(profile)
		if err := s.profileRepository.CreateProfile(ctx, profile); err != nil {
			return domain.ProfileResponse{}, err
		}
	case err != nil:
		return domain.ProfileResponse{}, err
	default:
		if profile.UserID != userUUID {
			return domain.ProfileResponse{}, domain.ErrUserNotAllowed
		}
		edit(profile)
		if err := s.profileRepository.UpdateProfile(ctx, profile); err != nil {
			return domain.ProfileResponse{}, err
		}
	}

	return toProfileResponse(profile), nil
}

// GetStats counts the user's scans, advice turns and posts concurrently.
func (s *profileService) GetStats(ctx context.Context, userID string) (domain.ProfileStatsResponse, error) {
	var stats domain.ProfileStatsResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.scans.CountScanResults(gctx, userID)
		stats.Scans = n
		return err
	})
	g.Go(func() error {
		n, err := s.turns.CountTurns(gctx, userID)
		stats.Advice = n
		return err
	})
	g.Go(func() error {
		n, err := s.posts.CountPosts(gctx, userID)
		stats.Posts = n
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.ProfileStatsResponse{}, err
	}
	return stats, nil
}

func toProfileResponse(p *entities.Profile) domain.ProfileResponse {
	return domain.ProfileResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		Name:            p.Name,
		Bio:             p.Bio,
		Location:        p.Location,
		Phone:           p.Phone,
		ProfileImageURL: p.ProfileImageURL,
		Persisted:       true,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
