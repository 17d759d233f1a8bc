package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/services"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubTokens struct {
	err error
}

func (s stubTokens) GenerateToken(userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + userID, nil
}

func setupHandler() (*gin.Engine, *MockUserRepository) {
	return setupHandlerWithTokens(stubTokens{})
}

func setupHandlerWithTokens(tokens TokenIssuer) (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)

	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)
	authHandler := NewAuthHandler(authService, tokens)

	router := gin.New()
	authHandler.RegisterRoutes(router.Group(""))

	return router, mockRepo
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: Should return 201 and created user (No Password)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		payload := map[string]string{
			"email":    "api_test@habits.app",
			"password": "CorrectHorse1!",
		}
		body, _ := json.Marshal(payload)

		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response userResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, payload["email"], response.Email)
		assert.NotEmpty(t, response.ID)

		assert.NotContains(t, w.Body.String(), "password")

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return 400 for Bad JSON (Invalid Email)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		payload := map[string]string{
			"email":    "not-an-email",
			"password": "Password123!",
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return 400 for Bad JSON (Password too short)", func(t *testing.T) {
		router, mockRepo := setupHandler()

		payload := map[string]string{
			"email":    "valid@email.com",
			"password": "short",
		}
		body, _ := json.Marshal(payload)

		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return 409 Conflict if email exists", func(t *testing.T) {
		router, mockRepo := setupHandler()

		payload := map[string]string{
			"email":    "duplicate@habits.app",
			"password": "LongEnoughPass!",
		}
		body, _ := json.Marshal(payload)

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "email already exists")
	})

	t.Run("Fail: Should return 500 Internal Server Error on DB failure", func(t *testing.T) {
		router, mockRepo := setupHandler()

		payload := map[string]string{
			"email":    "crash@habits.app",
			"password": "LongEnoughPass!",
		}
		body, _ := json.Marshal(payload)

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db connection lost"))

		req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	user, err := domain.NewUser("user-login", "login@habits.app")
	require.NoError(t, err)
	require.NoError(t, user.SetPassword("CorrectHorse1!"))

	t.Run("Success: Returns a token and the user", func(t *testing.T) {
		router, mockRepo := setupHandler()
		mockRepo.On("GetByEmail", mock.Anything, "login@habits.app").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{
			"email":    "  Login@Habits.app ",
			"password": "CorrectHorse1!",
		})

		require.Equal(t, http.StatusOK, w.Code)

		var response tokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "token-for-user-login", response.Token)
		assert.Equal(t, "user-login", response.User.ID)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Fail: Wrong password is 401", func(t *testing.T) {
		router, mockRepo := setupHandler()
		mockRepo.On("GetByEmail", mock.Anything, "login@habits.app").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{
			"email":    "login@habits.app",
			"password": "WrongHorse1!",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("Fail: Unknown email is indistinguishable from a wrong password", func(t *testing.T) {
		router, mockRepo := setupHandler()
		mockRepo.On("GetByEmail", mock.Anything, "ghost@habits.app").Return(nil, domain.ErrUserNotFound)

		w := postJSON(router, "/auth/login", map[string]string{
			"email":    "ghost@habits.app",
			"password": "CorrectHorse1!",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("Fail: Missing fields is 400", func(t *testing.T) {
		router, mockRepo := setupHandler()

		w := postJSON(router, "/auth/login", map[string]string{"email": "login@habits.app"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("Fail: Token signing error is 500", func(t *testing.T) {
		router, mockRepo := setupHandlerWithTokens(stubTokens{err: errors.New("no key")})
		mockRepo.On("GetByEmail", mock.Anything, "login@habits.app").Return(user, nil)

		w := postJSON(router, "/auth/login", map[string]string{
			"email":    "login@habits.app",
			"password": "CorrectHorse1!",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
