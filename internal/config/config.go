package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Storage StorageConfig
	Upload  UploadConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type MongoConfig struct {
	URI            string        // mongodb://localhost:27017
	Database       string        // cupid
	ConnectTimeout time.Duration // timeout cho mỗi lần thử kết nối
	MaxRetries     int
	RetryDelay     time.Duration
}

// Storage drivers
const (
	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

type StorageConfig struct {
	Driver string // local | minio

	// Local driver
	LocalDir       string // uploads
	LocalURLPrefix string // /uploads

	MinIO MinIOConfig
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // cupid
	Folder    string // loves
	UseSSL    bool   // false for local
}

type UploadConfig struct {
	MaxFileSize     int64         // bytes per asset
	MaxSongs        int           // tối đa 5 bài hát mỗi love page
	StrictMediaType bool          // reject non-image photo / non-audio song
	Timeout         time.Duration // wall-clock budget cho một submission
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Cupid API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "4000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URL", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DB", "cupid"),
			ConnectTimeout: time.Duration(getEnvInt("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			MaxRetries:     getEnvInt("MONGO_MAX_RETRIES", 3),
			RetryDelay:     time.Duration(getEnvInt("MONGO_RETRY_DELAY", 2)) * time.Second,
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", StorageDriverLocal),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "uploads"),
			LocalURLPrefix: getEnv("STORAGE_LOCAL_URL_PREFIX", "/uploads"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("MINIO_BUCKET", "cupid"),
				Folder:    getEnv("MINIO_FOLDER", "loves"),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		Upload: UploadConfig{
			MaxFileSize:     int64(getEnvInt("UPLOAD_MAX_FILE_SIZE_MB", 15)) * 1024 * 1024,
			MaxSongs:        getEnvInt("UPLOAD_MAX_SONGS", 5),
			StrictMediaType: getEnvBool("UPLOAD_STRICT_MEDIA_TYPE", true),
			Timeout:         time.Duration(getEnvInt("UPLOAD_TIMEOUT_SECONDS", 120)) * time.Second,
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverLocal, StorageDriverMinIO:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected local or minio)", c.Storage.Driver)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE_MB must be positive")
	}
	if c.Upload.MaxSongs < 0 {
		return fmt.Errorf("UPLOAD_MAX_SONGS must not be negative")
	}

	// Production environment phải có credentials thật
	if c.App.Environment == "production" {
		if c.Storage.Driver == StorageDriverMinIO && c.Storage.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_SECRET_KEY must be set in production")
		}
		if c.Mongo.URI == "mongodb://localhost:27017" {
			fmt.Println("WARNING: MONGO_URL points at localhost in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
