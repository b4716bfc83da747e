package user

import (
	"agri-assistant/domain"
	"agri-assistant/entities"
	"agri-assistant/pkg/jwt"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	mu       sync.Mutex
	users    map[string]*entities.User
	sessions map[string]*entities.Session
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:    map[string]*entities.User{},
		sessions: map[string]*entities.Session{},
	}
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (f *fakeUserRepository) CreateSession(_ context.Context, session *entities.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.ID.String()] = session
	return nil
}

func (f *fakeUserRepository) GetSessionByID(_ context.Context, id string) (*entities.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.sessions, id)
	return nil
}

func newTestService() (*userService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, jwt.NewJWTServiceWithSecret("secret")).(*userService)
	return svc, repo
}

func TestUserService_AccountAndSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	created, err := svc.CreateAccount(ctx, " Farmer@Example.com ", "password123", "Chikondi")
	require.NoError(t, err)
	assert.Equal(t, "farmer@example.com", created.Email)
	assert.NotEqual(t, "password123", repo.users[created.ID].Password)

	token, user, err := svc.CreateSession(ctx, "farmer@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	current, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Chikondi", current.Name)

	require.NoError(t, svc.DeleteSession(ctx, token))

	_, err = svc.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, token), domain.ErrSessionNotFound)
}

func TestUserService_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CreateAccount(ctx, "a@example.com", "password123", "A")
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, "A@example.com", "password456", "B")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
}

func TestUserService_WrongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.CreateAccount(ctx, "a@example.com", "password123", "A")
	require.NoError(t, err)

	_, _, err = svc.CreateSession(ctx, "a@example.com", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.CreateSession(ctx, "missing@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.CreateAccount(ctx, "a@example.com", "password123", "A")
	require.NoError(t, err)
	token, _, err := svc.CreateSession(ctx, "a@example.com", "password123")
	require.NoError(t, err)

	for _, s := range repo.sessions {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	}

	_, err = svc.CurrentUser(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
