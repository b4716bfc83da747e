package handlers

import (
	"agri-assistant/domain"
	"agri-assistant/internal/api/presenters"
	"agri-assistant/internal/middleware"
	"agri-assistant/internal/utils"
	"agri-assistant/internal/utils/logger"
	"agri-assistant/pkg/advisory"
	"agri-assistant/pkg/calendar"
	"agri-assistant/pkg/market"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "valid-token"

var testUser = domain.SessionUser{ID: "5b0c6a4e-1d2f-4c3b-9a8e-7f6d5c4b3a21", Name: "Chikondi", Role: domain.RoleUser}

type stubProvider struct{}

func (stubProvider) CreateAccount(_ context.Context, email string, _ string, name string) (*domain.SessionUser, error) {
	if email == "taken@example.com" {
		return nil, domain.ErrEmailAlreadyRegistered
	}
	return &domain.SessionUser{ID: testUser.ID, Name: name, Email: email}, nil
}

func (stubProvider) CreateSession(_ context.Context, email string, password string) (string, *domain.SessionUser, error) {
	if password != "password123" {
		return "", nil, domain.ErrInvalidCredentials
	}
	u := testUser
	u.Email = email
	return testToken, &u, nil
}

func (stubProvider) CurrentUser(_ context.Context, token string) (*domain.SessionUser, error) {
	if token == testToken {
		u := testUser
		return &u, nil
	}
	return nil, domain.ErrTokenInvalid
}

func (stubProvider) DeleteSession(context.Context, string) error { return errors.New("already gone") }

type stubProfiles struct {
	createErr error
}

func (stubProfiles) UploadProfileImage(context.Context, string, *multipart.FileHeader) (string, error) {
	return "", nil
}

func (s stubProfiles) CreateProfile(context.Context, domain.CreateProfileRequest) error {
	return s.createErr
}

type stubScanService struct {
	err error
}

func (s stubScanService) ScanCrop(_ context.Context, req domain.ScanCropRequest, userID string) (domain.ScanResultResponse, error) {
	if s.err != nil {
		return domain.ScanResultResponse{}, s.err
	}
	return domain.ScanResultResponse{ID: "scan-1", Disease: "Rust", Confidence: 0.8, ConfidencePercent: 80}, nil
}

func (s stubScanService) GetScanHistory(context.Context, string, int, int) ([]domain.ScanResultResponse, int64, error) {
	return []domain.ScanResultResponse{{ID: "scan-1"}}, 1, nil
}

const testScanID = "0f8b7c52-3d1e-4a6b-9c2d-1e5f4a3b2c10"

// errDriverUUID mirrors what Postgres says when a non-UUID reaches a uuid column.
var errDriverUUID = errors.New(`ERROR: invalid input syntax for type uuid: "other" (SQLSTATE 22P02)`)

func (s stubScanService) GetScanByID(_ context.Context, id string, _ string) (domain.ScanResultResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ScanResultResponse{}, errDriverUUID
	}
	if id != testScanID {
		return domain.ScanResultResponse{}, domain.ErrScanNotFound
	}
	return domain.ScanResultResponse{ID: id}, nil
}

type stubForumService struct{}

func (stubForumService) GetPosts(context.Context) ([]domain.PostResponse, error) {
	return []domain.PostResponse{}, nil
}

func (stubForumService) CreatePost(_ context.Context, req domain.CreatePostRequest, author domain.SessionUser) (domain.PostResponse, error) {
	return domain.PostResponse{Content: req.Content, AuthorName: author.Name}, nil
}

func (stubForumService) LikePost(_ context.Context, id string) (domain.LikePostResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.LikePostResponse{}, errDriverUUID
	}
	return domain.LikePostResponse{ID: id, Likes: 4}, nil
}

type stubWeather struct{}

func (stubWeather) FetchWeather(context.Context, float64, float64) advisory.Result[domain.WeatherSnapshot] {
	return advisory.Degraded(advisory.FallbackWeather, errors.New("timeout"))
}

func newTestApp(t *testing.T, profiles stubProfiles, scans stubScanService) *fiber.App {
	t.Helper()
	utils.InitValidator()

	m := middleware.NewMiddleware(stubProvider{}, profiles, logger.Discard())
	app := fiber.New()
	app.Use(m.SessionMiddleware())

	users := NewUserHandler(utils.Validate)
	app.Post("/register", users.Register)
	app.Post("/login", users.Login)
	app.Post("/logout", users.Logout)
	app.Get("/me", m.AuthMiddleware(), users.Me)

	scanHandler := NewScanHandler(scans, utils.Validate)
	app.Post("/scans", m.AuthMiddleware(), scanHandler.ScanCrop)
	app.Get("/scans/:id", m.AuthMiddleware(), scanHandler.GetScanDetails)

	forumHandler := NewForumHandler(stubForumService{}, utils.Validate)
	app.Post("/posts/:id/like", m.AuthMiddleware(), forumHandler.LikePost)

	farm := NewFarmHandler(stubWeather{}, market.NewMarketService(), calendar.NewCalendarService(stubWeather{}))
	app.Get("/weather", farm.GetWeather)
	app.Get("/market", farm.GetMarketPrices)
	app.Get("/calendar/:month", farm.GetCalendarMonth)
	return app
}

func decode(t *testing.T, resp *http.Response) presenters.Response {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out presenters.Response
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	resp, err := app.Test(jsonRequest("POST", "/login", `{"email":"a@example.com","password":"password123"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, testToken, decode(t, resp).Data.(map[string]any)["token"])

	resp, err = app.Test(jsonRequest("POST", "/login", `{"email":"a@example.com","password":"nope"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegister_ProfileFailureIsReported(t *testing.T) {
	app := newTestApp(t, stubProfiles{createErr: errors.New("insert failed")}, stubScanService{})

	resp, err := app.Test(jsonRequest("POST", "/register", `{"email":"a@example.com","password":"password123","name":"Chikondi"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode(t, resp)
	assert.False(t, out.Status)
	assert.Contains(t, out.Error, "insert failed")

	data, ok := out.Data.(map[string]any)
	require.True(t, ok, "session must be returned with the failure")
	token, _ := data["token"].(string)
	require.Equal(t, testToken, token)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRegister_DuplicateAccountReturnsNoSession(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	resp, err := app.Test(jsonRequest("POST", "/register", `{"email":"taken@example.com","password":"password123","name":"A"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, decode(t, resp).Data)
}

func TestRegister_Validation(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	resp, err := app.Test(jsonRequest("POST", "/register", `{"email":"not-an-email","password":"short"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/register", `{"email":"a@example.com","password":"password123","name":"A"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestLogout_AlwaysSucceeds(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func multipartImage(t *testing.T, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("image", "leaf.jpg")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestScanCrop(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	body, contentType := multipartImage(t, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	req := httptest.NewRequest("POST", "/scans", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, contentType = multipartImage(t, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	req = httptest.NewRequest("POST", "/scans", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Rust", decode(t, resp).Data.(map[string]any)["disease"])
}

func TestScanCrop_FailureHidesCause(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{err: errors.New(domain.MessageFailedScanCrop)})

	body, contentType := multipartImage(t, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	req := httptest.NewRequest("POST", "/scans", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, "Failed to analyze the image. Please try again.", out.Message)
	assert.Empty(t, out.Error)
}

func TestGetScanDetails_NotFound(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	req := httptest.NewRequest("GET", "/scans/5d2e8f61-7a4b-4c3d-8e9f-0a1b2c3d4e5f", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest("GET", "/scans/"+testScanID, nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMalformedIDsNeverReachStorage(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	for _, tc := range []struct{ method, target string }{
		{"GET", "/scans/other"},
		{"POST", "/posts/other/like"},
	} {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		req.Header.Set("Authorization", "Bearer "+testToken)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, tc.target)
		assert.NotContains(t, decode(t, resp).Error, "SQLSTATE", tc.target)
	}

	req := httptest.NewRequest("POST", "/posts/"+testScanID+"/like", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFarmEndpoints(t *testing.T) {
	app := newTestApp(t, stubProfiles{}, stubScanService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/weather?lat=-13.96&lon=33.77", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decode(t, resp).Data.(map[string]any)
	assert.Equal(t, true, data["degraded"])
	assert.Equal(t, "clear sky", data["weather"].(map[string]any)["description"])

	resp, err = app.Test(httptest.NewRequest("GET", "/weather?lat=abc&lon=1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/market?crop=tobacco", nil))
	require.NoError(t, err)
	prices := decode(t, resp).Data.([]any)
	require.Len(t, prices, 1)
	assert.Equal(t, "Limbe", prices[0].(map[string]any)["market"])

	resp, err = app.Test(httptest.NewRequest("GET", "/calendar/0", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
