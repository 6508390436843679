package middlewarectx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sea-catering/internal/lib/csrf"
	"github.com/magabrotheeeer/sea-catering/internal/lib/session"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

const testKey = "6368616e676520746869732070617373776f726420746f206120736563726574"

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func sessionCookieFor(t *testing.T, codec session.Codec, user session.SessionUser) *http.Cookie {
	t.Helper()
	blob, err := codec.Encrypt(session.Payload{User: user})
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: blob}
}

func TestSessionMiddleware(t *testing.T) {
	codec, err := session.NewCodec(testKey)
	require.NoError(t, err)

	captureUser := func(got **session.SessionUser) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := UserFromContext(r.Context()); ok {
				*got = user
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("валидная cookie кладет пользователя в контекст", func(t *testing.T) {
		var got *session.SessionUser
		handler := SessionMiddleware(codec, newNoopLogger())(captureUser(&got))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(sessionCookieFor(t, codec, session.SessionUser{
			UID: "user-1", Name: "Budi", Email: "budi@example.com", Role: models.RoleUser,
		}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, got)
		assert.Equal(t, "user-1", got.UID)
		assert.Equal(t, models.RoleUser, got.Role)
	})

	t.Run("без cookie запрос анонимный", func(t *testing.T) {
		var got *session.SessionUser
		handler := SessionMiddleware(codec, newNoopLogger())(captureUser(&got))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, got)
	})

	t.Run("испорченная cookie понижает запрос до анонимного", func(t *testing.T) {
		var got *session.SessionUser
		handler := SessionMiddleware(codec, newNoopLogger())(captureUser(&got))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-session"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, got)
	})
}

func TestRequireAuthAndAdmin(t *testing.T) {
	codec, err := session.NewCodec(testKey)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	run := func(t *testing.T, mw func(http.Handler) http.Handler, cookie *http.Cookie) int {
		t.Helper()
		handler := SessionMiddleware(codec, newNoopLogger())(mw(next))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions/user", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	userCookie := sessionCookieFor(t, codec, session.SessionUser{UID: "user-1", Role: models.RoleUser})
	adminCookie := sessionCookieFor(t, codec, session.SessionUser{UID: "admin-1", Role: models.RoleAdmin})

	t.Run("RequireAuth без сессии — 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(t, RequireAuth(newNoopLogger()), nil))
	})
	t.Run("RequireAuth с сессией — пропускает", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, run(t, RequireAuth(newNoopLogger()), userCookie))
	})
	t.Run("RequireAdmin без сессии — 401", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(t, RequireAdmin(newNoopLogger()), nil))
	})
	t.Run("RequireAdmin с ролью user — 403", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, run(t, RequireAdmin(newNoopLogger()), userCookie))
	})
	t.Run("RequireAdmin с ролью admin — пропускает", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, run(t, RequireAdmin(newNoopLogger()), adminCookie))
	})
}

func TestCSRFMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CSRFMiddleware(newNoopLogger())(next)
	token, err := csrf.NewToken()
	require.NoError(t, err)
	otherToken, err := csrf.NewToken()
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		header         string
		cookie         string
		expectedStatus int
	}{
		{name: "GET пропускается без токена", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "POST с совпадающими токенами", method: http.MethodPost, header: token, cookie: token, expectedStatus: http.StatusOK},
		{name: "POST без заголовка", method: http.MethodPost, cookie: token, expectedStatus: http.StatusForbidden},
		{name: "POST без cookie", method: http.MethodPost, header: token, expectedStatus: http.StatusForbidden},
		{name: "POST с несовпадающими токенами", method: http.MethodPost, header: token, cookie: otherToken, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/subscriptions", nil)
			if tt.header != "" {
				req.Header.Set("X-CSRF-Token", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CSRFHTTPCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
