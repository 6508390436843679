// Package csrf реализует генерацию и проверку CSRF-токенов по схеме
// double-submit cookie: одно и то же значение выдается в httpOnly cookie
// и в cookie, читаемом скриптом, а на изменяющих запросах клиент обязан
// вернуть его в заголовке.
//
// Схема не привязывает токен к сессии, только к cookie-jar браузера.
// Это известное ограничение: от атакующего, способного ставить cookie
// на том же сайте, она не защищает.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// NewToken возвращает 32 байта криптостойкой случайности в hex (64 символа).
func NewToken() (string, error) {
	const op = "csrf.NewToken"
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}

// Validate сравнивает токен из запроса клиента со значением httpOnly cookie.
// Отсутствие любого из значений — отказ. Сравнение выполняется за
// постоянное время.
func Validate(clientToken, cookieToken string) bool {
	if clientToken == "" || cookieToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(clientToken), []byte(cookieToken)) == 1
}
