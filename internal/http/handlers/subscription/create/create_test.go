package create

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/lib/session"
	"github.com/magabrotheeeer/sea-catering/internal/models"
	services "github.com/magabrotheeeer/sea-catering/internal/services/subscription"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummySubscription) (string, error) {
	args := m.Called(ctx, userUID, req)
	return args.String(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	validBody := models.DummySubscription{
		PlanID:       2,
		Name:         "Budi Santoso",
		Phone:        "081234567890",
		MealTypes:    []string{"breakfast", "lunch"},
		DeliveryDays: []string{"monday", "wednesday", "friday"},
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		user           *session.SessionUser
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное оформление подписки",
			requestBody: validBody,
			user:        &session.SessionUser{UID: "user-1", Role: models.RoleUser},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.DummySubscription")).
					Return("new-uid", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"uid":"new-uid"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			user:           &session.SessionUser{UID: "user-1", Role: models.RoleUser},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации наборов",
			requestBody: models.DummySubscription{
				PlanID:       2,
				Name:         "Budi Santoso",
				Phone:        "081234567890",
				MealTypes:    []string{"brunch"},
				DeliveryDays: []string{"monday"},
			},
			user:           &session.SessionUser{UID: "user-1", Role: models.RoleUser},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field MealTypes`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validBody,
			user:           nil,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "план питания не найден",
			requestBody: validBody,
			user:        &session.SessionUser{UID: "user-1", Role: models.RoleUser},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.DummySubscription")).
					Return("", services.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"meal plan not found"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody,
			user:        &session.SessionUser{UID: "user-1", Role: models.RoleUser},
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "user-1", mock.AnythingOfType("models.DummySubscription")).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/subscriptions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := req.Context()
			if tt.user != nil {
				ctx = context.WithValue(ctx, middlewarectx.User, tt.user)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
