package middlewarectx

import (
	"net/http"
	"time"
)

// Имена cookie, выдаваемых сервером.
const (
	// SessionCookie — зашифрованная cookie сессии.
	SessionCookie = "session"
	// CSRFHTTPCookie — httpOnly-копия CSRF-токена, проверяется сервером.
	CSRFHTTPCookie = "csrf_token_http"
	// CSRFClientCookie — читаемая скриптом копия CSRF-токена,
	// клиент возвращает её значение в заголовке X-CSRF-Token.
	CSRFClientCookie = "csrf_token_client"
)

// SetSessionCookie выставляет cookie сессии с зашифрованным значением.
func SetSessionCookie(w http.ResponseWriter, value string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie немедленно гасит cookie сессии.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetCSRFCookies выставляет пару CSRF-cookie с одинаковым значением токена:
// httpOnly для серверной проверки и читаемую для клиента.
func SetCSRFCookies(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	maxAge := int(ttl.Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFHTTPCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFClientCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: false,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
