package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App     AppConfig
	Catalog CatalogConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Storage StorageConfig
	MinIO   MinIOConfig
	Mirror  MirrorConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// CatalogConfig names the two record kinds inside the metadata catalog.
// The table names are overridable the same way the original deployment
// overrode its collection names.
type CatalogConfig struct {
	AccountsTable  string
	ArtifactsTable string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type AuthConfig struct {
	BcryptCost int
}

// StorageConfig selects and configures the artifact store backend.
type StorageConfig struct {
	Backend string // "local" or "minio"
	Root    string // root directory for the local backend
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string // minioadmin
	SecretKey string // minioadmin
	Bucket    string // modelhub
	UseSSL    bool   // false for local
}

// MirrorConfig controls the best-effort DVC mirroring step.
type MirrorConfig struct {
	Enabled bool
	Bin     string // dvc binary name/path
	WorkDir string // directory holding the .dvc repo, "" = process cwd
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ModelHub API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Catalog: CatalogConfig{
			AccountsTable:  getEnv("DB_ACCOUNTS_TABLE", "accounts"),
			ArtifactsTable: getEnv("DB_ARTIFACTS_TABLE", "artifact_versions"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 12),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "local"),
			Root:    getEnv("STORAGE_ROOT", "models"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "modelhub"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Mirror: MirrorConfig{
			Enabled: getEnvBool("MIRROR_ENABLED", true),
			Bin:     getEnv("MIRROR_BIN", "dvc"),
			WorkDir: getEnv("MIRROR_WORKDIR", ""),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	switch c.Storage.Backend {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (expected local or minio)", c.Storage.Backend)
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range [4,31]", c.Auth.BcryptCost)
	}

	return nil
}

// MirrorActive reports whether dvc mirroring can actually run. The tool
// tracks files on the local filesystem, so objects in minio cannot be
// mirrored; that combination degrades to no mirroring instead of a warn
// loop on every upload.
func (c *Config) MirrorActive() bool {
	return c.Mirror.Enabled && c.Storage.Backend == "local"
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
