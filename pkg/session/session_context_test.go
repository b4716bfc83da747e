package session

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils/logger"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	users          map[string]*domain.SessionUser // by token
	createErr      error
	deleteErr      error
	deletedTokens  []string
	createdAccount []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{users: map[string]*domain.SessionUser{}}
}

func (f *fakeProvider) CreateAccount(_ context.Context, email string, _ string, name string) (*domain.SessionUser, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdAccount = append(f.createdAccount, email)
	return &domain.SessionUser{ID: "user-" + name, Name: name, Email: email}, nil
}

func (f *fakeProvider) CreateSession(_ context.Context, email string, password string) (string, *domain.SessionUser, error) {
	if password != "password123" {
		return "", nil, domain.ErrInvalidCredentials
	}
	u := &domain.SessionUser{ID: "user-1", Name: "Chikondi", Email: email}
	token := "token-" + email
	f.users[token] = u
	return token, u, nil
}

func (f *fakeProvider) CurrentUser(_ context.Context, token string) (*domain.SessionUser, error) {
	if u, ok := f.users[token]; ok {
		return u, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (f *fakeProvider) DeleteSession(_ context.Context, token string) error {
	f.deletedTokens = append(f.deletedTokens, token)
	return f.deleteErr
}

type fakeProfileStore struct {
	uploadErr error
	createErr error
	created   []domain.CreateProfileRequest
	uploads   []string
}

func (f *fakeProfileStore) UploadProfileImage(_ context.Context, userID string, _ *multipart.FileHeader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, userID)
	return "https://bucket/profiles/profile_" + userID, nil
}

func (f *fakeProfileStore) CreateProfile(_ context.Context, req domain.CreateProfileRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, req)
	return nil
}

func TestInit_ResolvesToken(t *testing.T) {
	provider := newFakeProvider()
	provider.users["good"] = &domain.SessionUser{ID: "user-1", Name: "Chikondi"}

	sc := New(provider, &fakeProfileStore{}, logger.Discard())
	assert.Equal(t, StateUnknown, sc.State())
	assert.Equal(t, PhaseInit, sc.Phase())

	sc.Init(context.Background(), "good")

	assert.Equal(t, PhaseReady, sc.Phase())
	assert.Equal(t, StateAuthenticated, sc.State())
	assert.Equal(t, "user-1", sc.User().ID)
}

func TestInit_AnyFailureIsAnonymous(t *testing.T) {
	for _, token := range []string{"", "bad"} {
		sc := New(newFakeProvider(), &fakeProfileStore{}, logger.Discard())
		sc.Init(context.Background(), token)

		assert.Equal(t, StateAnonymous, sc.State())
		assert.Nil(t, sc.User())
	}
}

func TestLogin(t *testing.T) {
	sc := New(newFakeProvider(), &fakeProfileStore{}, logger.Discard())
	sc.Init(context.Background(), "")

	res := sc.Login(context.Background(), "a@example.com", "wrong")
	assert.False(t, res.Success)
	assert.Equal(t, domain.ErrInvalidCredentials.Error(), res.Error)
	assert.Equal(t, StateAnonymous, sc.State())

	res = sc.Login(context.Background(), "a@example.com", "password123")
	assert.True(t, res.Success)
	assert.Equal(t, StateAuthenticated, sc.State())
	assert.Equal(t, "token-a@example.com", sc.Token())
}

func TestSignup_CreatesProfileWithImage(t *testing.T) {
	profiles := &fakeProfileStore{}
	sc := New(newFakeProvider(), profiles, logger.Discard())
	sc.Init(context.Background(), "")

	res := sc.Signup(context.Background(), SignupInput{
		Email:        "a@example.com",
		Password:     "password123",
		Name:         "Chikondi",
		Location:     "Lilongwe",
		ProfileImage: &multipart.FileHeader{Filename: "me.jpg"},
	})

	require.True(t, res.Success, res.Error)
	assert.Equal(t, StateAuthenticated, sc.State())
	require.Len(t, profiles.created, 1)
	assert.Equal(t, "user-1", profiles.created[0].UserID)
	assert.Equal(t, "Lilongwe", profiles.created[0].Location)
	assert.Equal(t, "https://bucket/profiles/profile_user-1", profiles.created[0].ProfileImageURL)
}

func TestSignup_ProfileWriteFailureStaysAuthenticated(t *testing.T) {
	profiles := &fakeProfileStore{createErr: errors.New("insert failed")}
	sc := New(newFakeProvider(), profiles, logger.Discard())
	sc.Init(context.Background(), "")

	res := sc.Signup(context.Background(), SignupInput{
		Email:    "a@example.com",
		Password: "password123",
		Name:     "Chikondi",
	})

	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "insert failed")
	assert.Equal(t, StateAuthenticated, sc.State())
	require.NotNil(t, sc.User())
	assert.Empty(t, profiles.created)
}

func TestSignup_AccountFailureStaysAnonymous(t *testing.T) {
	provider := newFakeProvider()
	provider.createErr = domain.ErrEmailAlreadyRegistered
	sc := New(provider, &fakeProfileStore{}, logger.Discard())
	sc.Init(context.Background(), "")

	res := sc.Signup(context.Background(), SignupInput{Email: "a@example.com", Password: "password123", Name: "A"})

	assert.False(t, res.Success)
	assert.Equal(t, StateAnonymous, sc.State())
}

func TestLogout_ResetsEvenWhenDeleteFails(t *testing.T) {
	provider := newFakeProvider()
	provider.deleteErr = errors.New("network down")
	sc := New(provider, &fakeProfileStore{}, logger.Discard())
	sc.Init(context.Background(), "")
	require.True(t, sc.Login(context.Background(), "a@example.com", "password123").Success)

	res := sc.Logout(context.Background())

	assert.True(t, res.Success)
	assert.Equal(t, StateAnonymous, sc.State())
	assert.Nil(t, sc.User())
	assert.Equal(t, []string{"token-a@example.com"}, provider.deletedTokens)
}

func TestDispose_MutatorsFail(t *testing.T) {
	sc := New(newFakeProvider(), &fakeProfileStore{}, logger.Discard())
	sc.Init(context.Background(), "")
	sc.Dispose()

	assert.Equal(t, PhaseDisposed, sc.Phase())
	assert.Equal(t, domain.ErrSessionDisposed.Error(), sc.Login(context.Background(), "a@example.com", "password123").Error)
	assert.False(t, sc.Logout(context.Background()).Success)
	assert.False(t, sc.Signup(context.Background(), SignupInput{}).Success)

	sc.Init(context.Background(), "whatever")
	assert.Equal(t, PhaseDisposed, sc.Phase())
}
