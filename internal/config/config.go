package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	ServerPort      string
	StorageDriver   string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBMaxConns      int
	NatsURL         string
	LogLevel        string
	ShutdownTimeout time.Duration
	BcryptCost      int
	Token           TokenConfig
}

// TokenConfig is the signing setup shared by every token issued and verified
// by the process. It is built once at startup and never mutated.
type TokenConfig struct {
	Secret     string
	Algorithm  string
	TTLDays    int
	TTLHours   int
	TTLMinutes int
}

// TTL is the default token lifetime composed from the days/hours/minutes triple.
func (t TokenConfig) TTL() time.Duration {
	return time.Duration(t.TTLDays)*24*time.Hour +
		time.Duration(t.TTLHours)*time.Hour +
		time.Duration(t.TTLMinutes)*time.Minute
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		StorageDriver:   getEnv("STORAGE_DRIVER", StoragePostgres),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "circle"),
		DBPassword:      getEnv("DB_PASSWORD", "circle_dev_password"),
		DBName:          getEnv("DB_NAME", "circle"),
		DBMaxConns:      getEnvAsInt("DB_MAX_CONNS", 10),
		NatsURL:         getEnv("NATS_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		BcryptCost:      getEnvAsInt("BCRYPT_COST", 10),
		Token: TokenConfig{
			Secret:     getEnv("RANDOM_SECRET", "dev-secret-change-me"),
			Algorithm:  getEnv("ALGORITHM", "HS256"),
			TTLDays:    getEnvAsInt("ACCESS_TOKEN_EXPIRES_DAYS", 0),
			TTLHours:   getEnvAsInt("ACCESS_TOKEN_EXPIRES_HOURS", 24),
			TTLMinutes: getEnvAsInt("ACCESS_TOKEN_EXPIRES_MINUTES", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.StorageDriver != StoragePostgres && c.StorageDriver != StorageMemory {
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, c.StorageDriver))
	}
	if c.Token.Secret == "" {
		errs = append(errs, errors.New("RANDOM_SECRET is required"))
	}
	if c.Token.Algorithm == "" {
		errs = append(errs, errors.New("ALGORITHM is required"))
	}
	if c.Token.TTLDays < 0 || c.Token.TTLHours < 0 || c.Token.TTLMinutes < 0 {
		errs = append(errs, errors.New("token lifetime parts must not be negative"))
	}
	if c.Token.TTL() <= 0 {
		errs = append(errs, errors.New("token lifetime must be positive"))
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be positive"))
	}

	return errors.Join(errs...)
}

func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&pool_max_conns=%d",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBMaxConns)
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
