// Package routeguard реализует проверку доступа к страницам по префиксу пути.
//
// Таблица маршрутов делится на публичные, требующие входа и административные.
// Классификация идет по точному совпадению или по префиксу с "/", в порядке:
// публичные, затем требующие входа, затем административные. Неизвестные пути
// разрешены по умолчанию.
//
// Незалогиненный пользователь на закрытой странице перенаправляется на
// /login с callbackUrl, пользователь без роли admin на административной
// странице — на /unauthorized. Перенаправление отдается и XHR-запросам.
package routeguard

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/magabrotheeeer/sea-catering/internal/http/middlewarectx"
	"github.com/magabrotheeeer/sea-catering/internal/models"
)

// Access — требование доступа к пути.
type Access int

const (
	// AccessPublic — путь доступен без сессии.
	AccessPublic Access = iota
	// AccessAuthenticated — путь требует залогиненного пользователя.
	AccessAuthenticated
	// AccessAdmin — путь требует роль admin.
	AccessAdmin
)

// Table — таблица префиксов маршрутов по требованию доступа.
type Table struct {
	Public        []string
	Authenticated []string
	Admin         []string
}

// DefaultTable — таблица маршрутов страниц приложения.
func DefaultTable() Table {
	return Table{
		Public:        []string{"/", "/menu", "/contact", "/login", "/register", "/unauthorized"},
		Authenticated: []string{"/subscription", "/dashboard", "/profile"},
		Admin:         []string{"/admin"},
	}
}

func matches(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Classify возвращает требование доступа для пути. Порядок проверки:
// публичные, требующие входа, административные; неизвестный путь публичен.
func (t Table) Classify(path string) Access {
	for _, prefix := range t.Public {
		if matches(path, prefix) {
			return AccessPublic
		}
	}
	for _, prefix := range t.Authenticated {
		if matches(path, prefix) {
			return AccessAuthenticated
		}
	}
	for _, prefix := range t.Admin {
		if matches(path, prefix) {
			return AccessAdmin
		}
	}
	return AccessPublic
}

// Middleware возвращает HTTP middleware, применяющий таблицу доступа.
//
// Ожидает, что SessionMiddleware уже отработал и пользователь, если он есть,
// лежит в контексте.
func Middleware(table Table, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access := table.Classify(r.URL.Path)
			if access == AccessPublic {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := middlewarectx.UserFromContext(r.Context())
			if !ok {
				target := "/login?callbackUrl=" + url.QueryEscape(r.URL.Path)
				log.Info("redirecting unauthenticated request",
					slog.String("path", r.URL.Path))
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}

			if access == AccessAdmin && user.Role != models.RoleAdmin {
				log.Info("redirecting non-admin request",
					slog.String("path", r.URL.Path), slog.String("uid", user.UID))
				http.Redirect(w, r, "/unauthorized", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
