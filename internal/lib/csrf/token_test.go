package csrf

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	first, err := NewToken()
	require.NoError(t, err)
	second, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	_, err = hex.DecodeString(first)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidate(t *testing.T) {
	token, err := NewToken()
	require.NoError(t, err)
	other, err := NewToken()
	require.NoError(t, err)

	tests := []struct {
		name   string
		client string
		cookie string
		want   bool
	}{
		{name: "совпадающие токены", client: token, cookie: token, want: true},
		{name: "разные токены", client: token, cookie: other, want: false},
		{name: "пустой токен клиента", client: "", cookie: token, want: false},
		{name: "пустой токен cookie", client: token, cookie: "", want: false},
		{name: "оба пустые", client: "", cookie: "", want: false},
		{name: "разная длина", client: token[:32], cookie: token, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.client, tt.cookie))
		})
	}
}
