// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"strip-cropper/internal/detection"
)

// Config is the full runtime configuration of the service.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// OutputFolder is where /crop/save persists cropped images.
	OutputFolder string

	// MaxUploadBytes caps the size of an uploaded image file.
	MaxUploadBytes int64

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string

	// Detector carries the detection thresholds, defaulted from
	// detection.DefaultConfig and overridable per deployment.
	Detector detection.Config
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present and silently skipped when not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		OutputFolder: getEnv("OUTPUT_FOLDER", "./output"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Detector:     detection.DefaultConfig(),
	}

	var err error
	if cfg.MaxUploadBytes, err = getEnvInt64("MAX_UPLOAD_BYTES", 10*1024*1024); err != nil {
		return nil, err
	}

	d := &cfg.Detector
	overrides := []struct {
		key string
		dst *float64
	}{
		{"MIN_AREA_RATIO", &d.MinAreaRatio},
		{"MAX_AREA_RATIO", &d.MaxAreaRatio},
		{"MIN_ASPECT_RATIO", &d.MinAspectRatio},
		{"MAX_ASPECT_RATIO", &d.MaxAspectRatio},
		{"CROP_MARGIN_PERCENT", &d.CropMarginPercent},
	}
	for _, o := range overrides {
		if err := getEnvFloat(o.key, o.dst); err != nil {
			return nil, err
		}
	}
	if err := getEnvIntInto("CANNY_LOW", &d.CannyLow); err != nil {
		return nil, err
	}
	if err := getEnvIntInto("CANNY_HIGH", &d.CannyHigh); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}

func getEnvIntInto(key string, dst *int) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = n
	return nil
}

func getEnvFloat(key string, dst *float64) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = f
	return nil
}
