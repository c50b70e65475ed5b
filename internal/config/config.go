// Package config lê a configuração do processo a partir de variáveis de ambiente.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
)

// Drivers de repositório
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// ErrInvalid é retornado quando uma variável não pode ser interpretada
var ErrInvalid = errors.New("configuração inválida")

// Config contém a configuração completa do servidor
type Config struct {
	HTTPAddr         string
	GinMode          string
	LogLevel         string
	JWTSecret        string
	JWTExpiration    time.Duration
	Model            llm.Config
	SpecificityWords int
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	RepositoryDriver string
	Database         *database.PostgresConfig
	CORSOrigins      []string
	StaticDir        string
	TLSPFXPath       string
	TLSPFXPassword   string
	HistoryLimit     int
	DemoLogin        bool
}

// LoadDotEnv carrega o arquivo .env quando existir. A ausência do arquivo não é erro.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load monta a configuração a partir do ambiente atual
func Load() (*Config, error) {
	var errs []error
	p := parser{errs: &errs}

	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		JWTSecret:        os.Getenv("JWT_SECRET_KEY"),
		JWTExpiration:    time.Duration(p.int("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		SpecificityWords: p.int("SPECIFICITY_WORDS", dialogue.DefaultSpecificityWords),
		SessionTTL:       p.duration("SESSION_TTL", session.DefaultTTL),
		SweepInterval:    p.duration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
		RepositoryDriver: strings.ToLower(getEnv("REPOSITORY_DRIVER", DriverMemory)),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
		StaticDir:        os.Getenv("STATIC_DIR"),
		TLSPFXPath:       os.Getenv("TLS_PFX_PATH"),
		TLSPFXPassword:   os.Getenv("TLS_PFX_PASSWORD"),
		HistoryLimit:     p.int("CHAT_HISTORY_LIMIT", 200),
		DemoLogin:        p.bool("DEMO_LOGIN", false),
		Model: llm.Config{
			Provider:     strings.ToLower(getEnv("MODEL_PROVIDER", llm.ProviderNone)),
			Model:        os.Getenv("MODEL_NAME"),
			OllamaURL:    getEnv("OLLAMA_URL", llm.DefaultOllamaURL),
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
			GeminiKey:    os.Getenv("GEMINI_API_KEY"),
			Timeout:      p.duration("MODEL_TIMEOUT", llm.DefaultTimeout),
			Retries:      p.int("MODEL_RETRIES", 1),
		},
		Database: &database.PostgresConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            p.int("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Database:        getEnv("DB_NAME", "nexpos"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  int32(p.int("DB_MAX_CONNECTIONS", 10)),
			MinConnections:  int32(p.int("DB_MIN_CONNECTIONS", 2)),
			MaxConnLifetime: time.Duration(p.int("DB_MAX_LIFETIME", 300)) * time.Second,
		},
	}

	switch cfg.RepositoryDriver {
	case DriverMemory, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("%w: REPOSITORY_DRIVER=%q", ErrInvalid, cfg.RepositoryDriver))
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("%w: GIN_MODE=%q", ErrInvalid, cfg.GinMode))
	}
	switch cfg.Model.Provider {
	case llm.ProviderNone, llm.ProviderOllama, llm.ProviderAnthropic, llm.ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("%w: MODEL_PROVIDER=%q", ErrInvalid, cfg.Model.Provider))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// TLSEnabled informa se o servidor deve servir HTTPS
func (c *Config) TLSEnabled() bool {
	return c.TLSPFXPath != ""
}

type parser struct {
	errs *[]error
}

func (p parser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		*p.errs = append(*p.errs, fmt.Errorf("%w: %s=%q", ErrInvalid, key, raw))
		return def
	}
	return v
}

func (p parser) bool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*p.errs = append(*p.errs, fmt.Errorf("%w: %s=%q", ErrInvalid, key, raw))
		return def
	}
	return v
}

// duration aceita "90s", "5m" ou um número puro de segundos
func (p parser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		*p.errs = append(*p.errs, fmt.Errorf("%w: %s=%q", ErrInvalid, key, raw))
		return def
	}
	return d
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
