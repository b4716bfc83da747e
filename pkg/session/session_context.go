// Package session holds the per-request authentication state.
package session

import (
	"agri-assistant/domain"
	"agri-assistant/internal/utils/logger"
	"context"
	"fmt"
	"mime/multipart"
	"sync"
)

type Phase int

const (
	PhaseInit Phase = iota
	PhaseReady
	PhaseDisposed
)

type AuthState int

const (
	StateUnknown AuthState = iota
	StateAuthenticated
	StateAnonymous
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

type (
	Provider interface {
		CreateAccount(ctx context.Context, email string, password string, name string) (*domain.SessionUser, error)
		CreateSession(ctx context.Context, email string, password string) (string, *domain.SessionUser, error)
		CurrentUser(ctx context.Context, token string) (*domain.SessionUser, error)
		DeleteSession(ctx context.Context, token string) error
	}

	ProfileStore interface {
		UploadProfileImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error)
		CreateProfile(ctx context.Context, req domain.CreateProfileRequest) error
	}

	// Result is what the mutators report; they never return an error.
	Result struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}

	SignupInput struct {
		Email        string
		Password     string
		Name         string
		Location     string
		Phone        string
		ProfileImage *multipart.FileHeader
	}

	Context struct {
		mu       sync.RWMutex
		provider Provider
		profiles ProfileStore
		log      *logger.Logger

		phase Phase
		state AuthState
		user  *domain.SessionUser
		token string
	}
)

func New(provider Provider, profiles ProfileStore, log *logger.Logger) *Context {
	return &Context{
		provider: provider,
		profiles: profiles,
		log:      log,
	}
}

func failed(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Init resolves token into a user. Any failure, including an empty token,
// leaves the context Anonymous. Init runs once; later calls are no-ops.
func (c *Context) Init(ctx context.Context, token string) {
	c.mu.Lock()
	if c.phase != PhaseInit {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	var user *domain.SessionUser
	if token != "" {
		u, err := c.provider.CurrentUser(ctx, token)
		if err != nil {
			c.log.Debug("session not resolved", logger.Fields{"error": err.Error()})
		} else {
			user = u
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseInit {
		return
	}
	c.phase = PhaseReady
	if user != nil {
		c.setAuthenticated(user, token)
	} else {
		c.setAnonymous()
	}
}

func (c *Context) Phase() Phase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.phase
}

func (c *Context) State() AuthState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// User returns a copy of the authenticated user, or nil.
func (c *Context) User() *domain.SessionUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Context) Login(ctx context.Context, email string, password string) Result {
	if err := c.ready(); err != nil {
		return failed(err)
	}

	token, user, err := c.provider.CreateSession(ctx, email, password)
	if err != nil {
		return failed(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAuthenticated(user, token)
	return Result{Success: true}
}

// Signup creates the account, logs in, stores the optional profile image and
// creates the profile. A failure after the login step is reported but the
// context stays Authenticated; the account is not rolled back.
func (c *Context) Signup(ctx context.Context, in SignupInput) Result {
	if err := c.ready(); err != nil {
		return failed(err)
	}

	if _, err := c.provider.CreateAccount(ctx, in.Email, in.Password, in.Name); err != nil {
		return failed(err)
	}

	token, user, err := c.provider.CreateSession(ctx, in.Email, in.Password)
	if err != nil {
		return failed(err)
	}

	c.mu.Lock()
	c.setAuthenticated(user, token)
	c.mu.Unlock()

	var imageURL string
	if in.ProfileImage != nil {
		imageURL, err = c.profiles.UploadProfileImage(ctx, user.ID, in.ProfileImage)
		if err != nil {
			c.log.ErrorCtx(ctx, "signup profile image upload failed", logger.Fields{"user_id": user.ID, "error": err.Error()})
			return failed(fmt.Errorf("upload profile image: %w", err))
		}
	}

	err = c.profiles.CreateProfile(ctx, domain.CreateProfileRequest{
		UserID:          user.ID,
		Name:            in.Name,
		Location:        in.Location,
		Phone:           in.Phone,
		ProfileImageURL: imageURL,
	})
	if err != nil {
		c.log.ErrorCtx(ctx, "signup profile create failed", logger.Fields{"user_id": user.ID, "error": err.Error()})
		return failed(fmt.Errorf("create profile: %w", err))
	}

	return Result{Success: true}
}

// Logout always ends Anonymous; a failed provider delete is only logged.
func (c *Context) Logout(ctx context.Context) Result {
	if err := c.ready(); err != nil {
		return failed(err)
	}

	token := c.Token()
	if token != "" {
		if err := c.provider.DeleteSession(ctx, token); err != nil {
			c.log.WarnCtx(ctx, "session delete failed", logger.Fields{"error": err.Error()})
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setAnonymous()
	return Result{Success: true}
}

// Dispose ends the context. Mutators fail afterwards.
func (c *Context) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseDisposed
	c.user = nil
	c.token = ""
}

func (c *Context) ready() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.phase {
	case PhaseDisposed:
		return domain.ErrSessionDisposed
	case PhaseInit:
		c.phase = PhaseReady
		c.state = StateAnonymous
	}
	return nil
}

func (c *Context) setAuthenticated(user *domain.SessionUser, token string) {
	c.state = StateAuthenticated
	c.user = user
	c.token = token
}

func (c *Context) setAnonymous() {
	c.state = StateAnonymous
	c.user = nil
	c.token = ""
}
