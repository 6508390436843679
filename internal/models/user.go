// Package models содержит доменные структуры приложения: пользователей,
// планы питания, подписки и отзывы, а также Dummy-структуры для приёма
// данных из JSON-запросов до их валидации.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Имя пользователя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // Хэш пароля
	Role         string    // Роль: user или admin, неизменяема после создания
	CreatedAt    time.Time // Дата регистрации
	UpdatedAt    time.Time // Дата последнего изменения
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Name     string `json:"name" validate:"required,min=2"`            // Имя
	Email    string `json:"email" validate:"required,email"`           // Электронная почта
	Password string `json:"password" validate:"required,min=8,max=72"` // Пароль (bcrypt ограничен 72 байтами)
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"` // Электронная почта
	Password string `json:"password" validate:"required"`    // Пароль
}
