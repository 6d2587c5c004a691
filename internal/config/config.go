package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Sector SectorConfig
	Upload UploadConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// SectorConfig holds the sector rendering defaults served to the UI and
// the render cap applied server-side.
type SectorConfig struct {
	RadiusMeters     float64
	RadiusMinMeters  float64
	RadiusMaxMeters  float64
	RadiusStepMeters float64
	FillOpacity      float64
	FillColor        string
	MaxRendered      int
	ZoomLevel        int
}

// UploadConfig holds upload and retention limits
type UploadConfig struct {
	MaxBytes    int64
	MaxDatasets int
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("SECTOR_RADIUS_METERS", 300.0)
	viper.SetDefault("SECTOR_RADIUS_MIN_METERS", 50.0)
	viper.SetDefault("SECTOR_RADIUS_MAX_METERS", 2000.0)
	viper.SetDefault("SECTOR_RADIUS_STEP_METERS", 50.0)
	viper.SetDefault("SECTOR_FILL_OPACITY", 0.5)
	viper.SetDefault("SECTOR_FILL_COLOR", "#3388ff")
	viper.SetDefault("MAX_RENDERED_SECTORS", 100)
	viper.SetDefault("MAP_ZOOM_LEVEL", 14)
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(10*1024*1024))
	viper.SetDefault("MAX_DATASETS", 16)

	// Read from .env files based on environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // Use "dev" to match .env.dev filename
	}

	// Try to read .env file for the current environment
	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// Read .env file (ignore error if file doesn't exist)
	_ = viper.ReadInConfig() // Ignore error - file may not exist

	// Environment variables override .env file values
	viper.AutomaticEnv()

	// Bind specific environment variable names
	viper.BindEnv("PORT")
	viper.BindEnv("ENVIRONMENT")
	viper.BindEnv("ALLOWED_ORIGINS")
	viper.BindEnv("SECTOR_RADIUS_METERS")
	viper.BindEnv("SECTOR_RADIUS_MIN_METERS")
	viper.BindEnv("SECTOR_RADIUS_MAX_METERS")
	viper.BindEnv("SECTOR_RADIUS_STEP_METERS")
	viper.BindEnv("SECTOR_FILL_OPACITY")
	viper.BindEnv("SECTOR_FILL_COLOR")
	viper.BindEnv("MAX_RENDERED_SECTORS")
	viper.BindEnv("MAP_ZOOM_LEVEL")
	viper.BindEnv("MAX_UPLOAD_BYTES")
	viper.BindEnv("MAX_DATASETS")

	var config Config
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = strings.Split(viper.GetString("ALLOWED_ORIGINS"), ",")
	config.Sector.RadiusMeters = viper.GetFloat64("SECTOR_RADIUS_METERS")
	config.Sector.RadiusMinMeters = viper.GetFloat64("SECTOR_RADIUS_MIN_METERS")
	config.Sector.RadiusMaxMeters = viper.GetFloat64("SECTOR_RADIUS_MAX_METERS")
	config.Sector.RadiusStepMeters = viper.GetFloat64("SECTOR_RADIUS_STEP_METERS")
	config.Sector.FillOpacity = viper.GetFloat64("SECTOR_FILL_OPACITY")
	config.Sector.FillColor = viper.GetString("SECTOR_FILL_COLOR")
	config.Sector.MaxRendered = viper.GetInt("MAX_RENDERED_SECTORS")
	config.Sector.ZoomLevel = viper.GetInt("MAP_ZOOM_LEVEL")
	config.Upload.MaxBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	config.Upload.MaxDatasets = viper.GetInt("MAX_DATASETS")

	log.Info().
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Int("origin_count", len(config.Server.AllowedOrigins)).
		Msg("CORS configuration debug")

	return &config, nil
}
