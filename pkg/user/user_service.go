package user

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService owns accounts and their login sessions. It is the auth
// provider behind session.Context.
type (
	UserService interface {
		CreateAccount(ctx context.Context, email string, password string, name string) (*domain.SessionUser, error)
		CreateSession(ctx context.Context, email string, password string) (string, *domain.SessionUser, error)
		CurrentUser(ctx context.Context, token string) (*domain.SessionUser, error)
		DeleteSession(ctx context.Context, token string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		now:            time.Now,
	}
}

func (s *userService) CreateAccount(ctx context.Context, email string, password string, name string) (*domain.SessionUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.userRepository.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return toSessionUser(user), nil
}

func (s *userService) CreateSession(ctx context.Context, email string, password string) (string, *domain.SessionUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	session := &entities.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(jwt.TokenTTL),
	}
	if err := s.userRepository.CreateSession(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), session.ID.String(), user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, toSessionUser(user), nil
}

func (s *userService) CurrentUser(ctx context.Context, token string) (*domain.SessionUser, error) {
	claims, err := s.jwtService.GetClaimsByToken(token)
	if err != nil {
		return nil, err
	}

	session, err := s.userRepository.GetSessionByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID.String() != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}
	if !session.ExpiresAt.After(s.now()) {
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepository.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return toSessionUser(user), nil
}

func (s *userService) DeleteSession(ctx context.Context, token string) error {
	claims, err := s.jwtService.GetClaimsByToken(token)
	if err != nil {
		return err
	}

	if err := s.userRepository.DeleteSession(ctx, claims.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSessionNotFound
		}
		return err
	}
	return nil
}

func toSessionUser(user *entities.User) *domain.SessionUser {
	return &domain.SessionUser{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
