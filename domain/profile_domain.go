package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetProfile         = "profile retrieved successfully"
	MessageSuccessUpdateProfile      = "profile updated successfully"
	MessageSuccessUploadProfileImage = "profile image uploaded successfully"
	MessageSuccessGetProfileStats    = "profile statistics retrieved successfully"

	MessageFailedGetProfile         = "failed to retrieve profile"
	MessageFailedUpdateProfile      = "failed to update profile"
	MessageFailedUploadProfileImage = "failed to upload profile image"
	MessageFailedGetProfileStats    = "failed to retrieve profile statistics"

	ErrProfileNotFound = errors.New("profile not found")
)

type (
	CreateProfileRequest struct {
		UserID          string
		Name            string
		Location        string
		Phone           string
		ProfileImageURL string
	}

	UpdateProfileRequest struct {
		Name     string `json:"name" validate:"omitempty,max=100"`
		Bio      string `json:"bio" validate:"omitempty,max=1000"`
		Location string `json:"location" validate:"omitempty,max=200"`
		Phone    string `json:"phone" validate:"omitempty,max=30"`
	}

	UploadProfileImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ProfileResponse struct {
		ID              string    `json:"id"`
		UserID          string    `json:"user_id"`
		Name            string    `json:"name"`
		Bio             string    `json:"bio"`
		Location        string    `json:"location"`
		Phone           string    `json:"phone"`
		ProfileImageURL string    `json:"profile_image_url,omitempty"`
		Persisted       bool      `json:"persisted"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	ProfileStatsResponse struct {
		Scans  int64 `json:"scans"`
		Advice int64 `json:"advice"`
		Posts  int64 `json:"posts"`
	}
)
