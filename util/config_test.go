package util

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

const testSecret = "YELLOW SUBMARINE, BLACK WIZARDRY"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", testSecret)

	config, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", config.Port)
	require.Equal(t, "jwt", config.TokenKind)
	require.Equal(t, 24*time.Hour, config.TokenTTL)
	require.Equal(t, []string{"http://localhost:8080"}, config.AllowedOrigins)
	require.False(t, config.EnforceSeats)
	require.Equal(t, 32, config.SendQueue)
	require.Equal(t, 4096, config.MaxMessageSize)
	require.Empty(t, config.RedisAddress)
	require.Equal(t, RedisEventsChannel, config.RedisChannel)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", testSecret)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_KIND", "paseto")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:3001,")
	t.Setenv("ENFORCE_SEATS", "true")
	t.Setenv("SEND_QUEUE", "8")
	t.Setenv("MAX_MESSAGE_SIZE", "8192")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	config, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "9000", config.Port)
	require.Equal(t, "paseto", config.TokenKind)
	require.Equal(t, 90*time.Minute, config.TokenTTL)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, config.AllowedOrigins)
	require.True(t, config.EnforceSeats)
	require.Equal(t, 8, config.SendQueue)
	require.Equal(t, 8192, config.MaxMessageSize)
	require.Equal(t, "localhost:6379", config.RedisAddress)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{name: "missing secret", env: map[string]string{}, field: "TokenSecret"},
		{name: "short secret", env: map[string]string{"TOKEN_SECRET": "short"}, field: "TokenSecret"},
		{name: "port", env: map[string]string{"TOKEN_SECRET": testSecret, "PORT": "http"}, field: "Port"},
		{name: "token kind", env: map[string]string{"TOKEN_SECRET": testSecret, "TOKEN_KIND": "rot13"}, field: "TokenKind"},
		{name: "ttl", env: map[string]string{"TOKEN_SECRET": testSecret, "TOKEN_TTL": "soon"}, field: "TokenTTL"},
		{name: "queue", env: map[string]string{"TOKEN_SECRET": testSecret, "SEND_QUEUE": "0"}, field: "SendQueue"},
		{name: "message size", env: map[string]string{"TOKEN_SECRET": testSecret, "MAX_MESSAGE_SIZE": "100"}, field: "MaxMessageSize"},
		{name: "redis address", env: map[string]string{"TOKEN_SECRET": testSecret, "REDIS_ADDR": "no port"}, field: "RedisAddress"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKEN_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestLoadConfigMalformedBoolKeepsDefault(t *testing.T) {
	t.Setenv("TOKEN_SECRET", testSecret)
	t.Setenv("ENFORCE_SEATS", "maybe")

	config, err := LoadConfig()
	require.NoError(t, err)
	require.False(t, config.EnforceSeats)
}
