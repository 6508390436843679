// Package session реализует шифрование и расшифровку сессионного cookie.
//
// Полезная нагрузка — JSON с данными пользователя. Шифр — AES-256-CBC
// с дополнением PKCS#7, на каждый вызов генерируется новый случайный IV.
// Формат блоба: iv_hex:ciphertext_hex. Клиент видит блоб как непрозрачную
// строку, восстановить из него личность и роль может только сервер.
package session

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// SessionUser данные пользователя, хранящиеся в сессии.
type SessionUser struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Payload полезная нагрузка сессионного cookie.
type Payload struct {
	User SessionUser `json:"user"`
}

// Codec описывает интерфейс кодека сессии.
type Codec interface {
	// Encrypt сериализует payload и возвращает блоб iv_hex:ciphertext_hex.
	Encrypt(payload Payload) (string, error)
	// Decrypt разбирает блоб и возвращает payload, либо ошибку расшифровки.
	Decrypt(blob string) (*Payload, error)
}

// CodecImpl реализует Codec на базе AES-256-CBC с 32-байтовым ключом.
type CodecImpl struct {
	key []byte
}

// NewCodec создает кодек из ключа, заданного 64 hex-символами (32 байта).
func NewCodec(hexKey string) (*CodecImpl, error) {
	const op = "session.NewCodec"
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%s: key must be 32 bytes, got %d", op, len(key))
	}
	return &CodecImpl{key: key}, nil
}

// Encrypt шифрует payload свежим случайным IV и возвращает iv_hex:ciphertext_hex.
func (c *CodecImpl) Encrypt(payload Payload) (string, error) {
	const op = "session.Encrypt"

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt разбирает блоб iv_hex:ciphertext_hex и восстанавливает payload.
// Любой некорректный вход (неверное число частей, плохой hex, неверная длина,
// битое дополнение, невалидный JSON) возвращается как единая ошибка расшифровки.
func (c *CodecImpl) Decrypt(blob string) (*Payload, error) {
	const op = "session.Decrypt"

	parts := strings.Split(blob, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%s: malformed blob", op)
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%s: invalid iv length %d", op, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%s: invalid ciphertext length %d", op, len(ciphertext))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &payload, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padding)
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("corrupted padding")
		}
	}
	return data[:len(data)-padding], nil
}
