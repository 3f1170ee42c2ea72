package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Report ReportConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for item photos.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ReportConfig holds profitability report settings.
type ReportConfig struct {
	DefaultTopN          int    `mapstructure:"default_top_n"`
	Timezone             string `mapstructure:"timezone"`
	PlaceholderThumbnail string `mapstructure:"placeholder_thumbnail"`
	ImageBaseURL         string `mapstructure:"image_base_url"`
	PresignThumbnails    bool   `mapstructure:"presign_thumbnails"`
}

// Location returns the zone "today" is evaluated in, falling back to UTC.
func (r *ReportConfig) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables with the RESALE_ prefix.
// Values from configs/.env are loaded first when the file exists; variables
// already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	v.SetEnvPrefix("RESALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "resale")
	v.SetDefault("db.password", "resale_secret")
	v.SetDefault("db.name", "resale_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.key_prefix", "items/")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Report defaults
	v.SetDefault("report.default_top_n", 10)
	v.SetDefault("report.timezone", "UTC")
	v.SetDefault("report.placeholder_thumbnail", "/static/img/no-image.png")
	v.SetDefault("report.image_base_url", "/uploads/items")
	v.SetDefault("report.presign_thumbnails", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "RESALE_SERVER_PORT",
		"server.read_timeout":          "RESALE_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "RESALE_SERVER_WRITE_TIMEOUT",
		"server.environment":           "RESALE_SERVER_ENVIRONMENT",
		"db.host":                      "RESALE_DB_HOST",
		"db.port":                      "RESALE_DB_PORT",
		"db.user":                      "RESALE_DB_USER",
		"db.password":                  "RESALE_DB_PASSWORD",
		"db.name":                      "RESALE_DB_NAME",
		"db.sslmode":                   "RESALE_DB_SSLMODE",
		"db.max_open":                  "RESALE_DB_MAX_OPEN",
		"db.max_idle":                  "RESALE_DB_MAX_IDLE",
		"s3.region":                    "RESALE_S3_REGION",
		"s3.bucket":                    "RESALE_S3_BUCKET",
		"s3.endpoint":                  "RESALE_S3_ENDPOINT",
		"s3.access_key":                "RESALE_S3_ACCESS_KEY",
		"s3.secret_key":                "RESALE_S3_SECRET_KEY",
		"s3.key_prefix":                "RESALE_S3_KEY_PREFIX",
		"s3.presign_expiry":            "RESALE_S3_PRESIGN_EXPIRY",
		"log.level":                    "RESALE_LOG_LEVEL",
		"log.format":                   "RESALE_LOG_FORMAT",
		"log.output":                   "RESALE_LOG_OUTPUT",
		"cors.allowed_origins":         "RESALE_CORS_ALLOWED_ORIGINS",
		"report.default_top_n":         "RESALE_REPORT_DEFAULT_TOP_N",
		"report.timezone":              "RESALE_REPORT_TIMEZONE",
		"report.placeholder_thumbnail": "RESALE_REPORT_PLACEHOLDER_THUMBNAIL",
		"report.image_base_url":        "RESALE_REPORT_IMAGE_BASE_URL",
		"report.presign_thumbnails":    "RESALE_REPORT_PRESIGN_THUMBNAILS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RESALE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RESALE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		KeyPrefix:     v.GetString("s3.key_prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Report = ReportConfig{
		DefaultTopN:          v.GetInt("report.default_top_n"),
		Timezone:             v.GetString("report.timezone"),
		PlaceholderThumbnail: v.GetString("report.placeholder_thumbnail"),
		ImageBaseURL:         v.GetString("report.image_base_url"),
		PresignThumbnails:    v.GetBool("report.presign_thumbnails"),
	}

	return cfg, nil
}
