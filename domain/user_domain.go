package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "user logged in successfully"
	MessageSuccessLogout   = "user logged out successfully"
	MessageSuccessGetMe    = "user retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to retrieve user"

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionExpired         = errors.New("session expired")
	ErrSessionDisposed        = errors.New("session context disposed")
	ErrNotAuthenticated       = errors.New("not authenticated")
)

type (
	RegisterRequest struct {
		Email        string                `json:"email" form:"email" validate:"required,email"`
		Password     string                `json:"password" form:"password" validate:"required,min=8"`
		Name         string                `json:"name" form:"name" validate:"required"`
		Location     string                `json:"location" form:"location" validate:"omitempty"`
		Phone        string                `json:"phone" form:"phone" validate:"omitempty"`
		ProfileImage *multipart.FileHeader `json:"-" form:"-"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// SessionUser is the read-only copy of the account held for a session.
	SessionUser struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  *SessionUser `json:"user"`
	}
)
