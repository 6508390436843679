package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/lib/session"
	"github.com/magabrotheeeer/sea-catering/internal/models"
	"github.com/magabrotheeeer/sea-catering/internal/services/auth"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, req models.DummyLogin) (*session.SessionUser, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.SessionUser), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	codec, err := session.NewCodec(testKey)
	require.NoError(t, err)

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name:        "успешный вход выставляет cookie сессии",
			requestBody: models.DummyLogin{Email: "budi@example.com", Password: "correct-horse"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("models.DummyLogin")).
					Return(&session.SessionUser{
						UID: "user-1", Name: "Budi", Email: "budi@example.com", Role: models.RoleUser,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"uid":"user-1"`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "ошибка валидации email",
			requestBody:    models.DummyLogin{Email: "not-an-email", Password: "correct-horse"},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name:        "неверные учетные данные",
			requestBody: models.DummyLogin{Email: "budi@example.com", Password: "wrong-password"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("models.DummyLogin")).
					Return(nil, auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid credentials"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.DummyLogin{Email: "budi@example.com", Password: "correct-horse"},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("models.DummyLogin")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not login"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, codec, 168*time.Hour, false)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			var sessionCookie *http.Cookie
			for _, cookie := range w.Result().Cookies() {
				if cookie.Name == middlewarectx.SessionCookie {
					sessionCookie = cookie
				}
			}
			if tt.expectCookie {
				require.NotNil(t, sessionCookie)
				assert.True(t, sessionCookie.HttpOnly)
				payload, err := codec.Decrypt(sessionCookie.Value)
				require.NoError(t, err)
				assert.Equal(t, "user-1", payload.User.UID)
			} else {
				assert.Nil(t, sessionCookie)
			}

			mockService.AssertExpectations(t)
		})
	}
}
