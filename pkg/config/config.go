package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	// MetricsAddr is the listen address of the operational endpoint
	// exposing /health and /metrics.
	MetricsAddr string

	API     APIConfig
	Lookup  LookupConfig
	Log     LogConfig
	Uploads UploadsConfig
	Exports ExportsConfig
}

// APIConfig points the console at the AgriSure backend.
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	UploadTimeout  time.Duration
	LoginRoute     string
	RevokeAllDelay time.Duration
}

// LookupConfig holds the third-party geo lookup endpoints.
// These are best-effort services; an empty URL disables that lookup.
type LookupConfig struct {
	StatesURL  string
	PincodeURL string
	TehsilURL  string
	Timeout    time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// UploadsConfig bounds client-side attachment handling.
type UploadsConfig struct {
	MaxCornerPhotos  int
	MaxDocuments     int
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// ExportsConfig controls where rendered CSV/PDF exports are written.
type ExportsConfig struct {
	StorageDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.MetricsAddr = v.GetString("METRICS_ADDR")

	cfg.API = APIConfig{
		BaseURL:        strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout:        parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
		UploadTimeout:  parseDuration(v.GetString("API_UPLOAD_TIMEOUT"), 60*time.Second),
		LoginRoute:     v.GetString("LOGIN_ROUTE"),
		RevokeAllDelay: parseDuration(v.GetString("REVOKE_ALL_REDIRECT_DELAY"), time.Second),
	}

	cfg.Lookup = LookupConfig{
		StatesURL:  strings.TrimRight(v.GetString("LOOKUP_STATES_URL"), "/"),
		PincodeURL: strings.TrimRight(v.GetString("LOOKUP_PINCODE_URL"), "/"),
		TehsilURL:  strings.TrimRight(v.GetString("LOOKUP_TEHSIL_URL"), "/"),
		Timeout:    parseDuration(v.GetString("LOOKUP_TIMEOUT"), 5*time.Second),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxFileSize := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		MaxCornerPhotos:  v.GetInt("UPLOADS_MAX_CORNER_PHOTOS"),
		MaxDocuments:     v.GetInt("UPLOADS_MAX_DOCUMENTS"),
		MaxFileSizeBytes: maxFileSize,
		AllowedMIMEs:     splitAndTrim(v.GetString("UPLOADS_ALLOWED_MIME_TYPES")),
	}

	cfg.Exports = ExportsConfig{
		StorageDir: v.GetString("EXPORTS_STORAGE_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("METRICS_ADDR", ":9100")

	v.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("API_UPLOAD_TIMEOUT", "60s")
	v.SetDefault("LOGIN_ROUTE", "/login")
	v.SetDefault("REVOKE_ALL_REDIRECT_DELAY", "1s")

	v.SetDefault("LOOKUP_STATES_URL", "https://api.agrisure.dev/geo")
	v.SetDefault("LOOKUP_PINCODE_URL", "https://api.postalpincode.in/pincode")
	v.SetDefault("LOOKUP_TEHSIL_URL", "")
	v.SetDefault("LOOKUP_TIMEOUT", "5s")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("UPLOADS_MAX_CORNER_PHOTOS", 8)
	v.SetDefault("UPLOADS_MAX_DOCUMENTS", 5)
	v.SetDefault("UPLOADS_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("UPLOADS_ALLOWED_MIME_TYPES", "image/jpeg,image/png,application/pdf")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
