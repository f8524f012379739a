package util

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	Port           string        `mapstructure:"PORT" validate:"required,number"`
	TokenSecret    string        `mapstructure:"TOKEN_SECRET" validate:"required,min=32"`
	TokenKind      string        `mapstructure:"TOKEN_KIND" validate:"oneof=jwt paseto"`
	TokenTTL       time.Duration `mapstructure:"TOKEN_TTL" validate:"gt=0"`
	AllowedOrigins []string      `mapstructure:"ALLOWED_ORIGINS" validate:"dive,required"`
	StaticDir      string        `mapstructure:"STATIC_DIR" validate:"required"`
	EnforceSeats   bool          `mapstructure:"ENFORCE_SEATS"`
	SendQueue      int           `mapstructure:"SEND_QUEUE" validate:"min=1"`
	MaxMessageSize int           `mapstructure:"MAX_MESSAGE_SIZE" validate:"min=512"`
	RedisAddress   string        `mapstructure:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword  string        `mapstructure:"REDIS_PW"`
	RedisChannel   string        `mapstructure:"REDIS_CHANNEL" validate:"required_with=RedisAddress"`
}

// LoadConfig reads .env (if present) and the environment, then validates
// the result. Malformed numbers and durations are reported as validation
// failures on the zero value. A malformed boolean keeps its default.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:           getenv("PORT", "8080"),
		TokenSecret:    os.Getenv("TOKEN_SECRET"),
		TokenKind:      getenv("TOKEN_KIND", "jwt"),
		TokenTTL:       getduration("TOKEN_TTL", 24*time.Hour),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "http://localhost:8080")),
		StaticDir:      getenv("STATIC_DIR", "./frontend"),
		EnforceSeats:   getbool("ENFORCE_SEATS", false),
		SendQueue:      getint("SEND_QUEUE", 32),
		MaxMessageSize: getint("MAX_MESSAGE_SIZE", 4096),
		RedisAddress:   os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PW"),
		RedisChannel:   getenv("REDIS_CHANNEL", RedisEventsChannel),
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getduration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func splitList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Filter(parts, func(p string, _ int) bool {
		return p != ""
	})
}
