package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

// DSN returns the pgx connection string
func (c DatabaseConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Database +
		"?sslmode=" + c.SSLMode + "&search_path=" + c.Schema
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// Addr returns host:port
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type AdminConfig struct {
	Passphrase     string
	PassphraseHash string // bcrypt; takes precedence over Passphrase when set
	GrantSecret    string
	GrantTTL       time.Duration
	UnlockAttempts int
	UnlockWindow   time.Duration
}

type StorageConfig struct {
	Driver        string // "local" or "drive"
	LocalRoot     string
	PublicBaseURL string
	DriveFolderID string
	DriveCreds    string
	Bucket        string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("ADMIN_PASSPHRASE", "vermeni2025")
	viper.SetDefault("ADMIN_GRANT_TTL_MINUTES", 240)
	viper.SetDefault("ADMIN_UNLOCK_ATTEMPTS", 5)
	viper.SetDefault("ADMIN_UNLOCK_WINDOW_SECONDS", 60)
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_LOCAL_ROOT", "media")
	viper.SetDefault("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/media")
	viper.SetDefault("STORAGE_BUCKET", "products")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			LogLevel:       viper.GetString("LOG_LEVEL"),
			AllowedOrigins: splitList(viper.GetString("SERVER_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			Enabled:  viper.GetBool("REDIS_ENABLED"),
		},
		Admin: AdminConfig{
			Passphrase:     viper.GetString("ADMIN_PASSPHRASE"),
			PassphraseHash: viper.GetString("ADMIN_PASSPHRASE_HASH"),
			GrantSecret:    viper.GetString("ADMIN_GRANT_SECRET"),
			GrantTTL:       time.Duration(viper.GetInt("ADMIN_GRANT_TTL_MINUTES")) * time.Minute,
			UnlockAttempts: viper.GetInt("ADMIN_UNLOCK_ATTEMPTS"),
			UnlockWindow:   time.Duration(viper.GetInt("ADMIN_UNLOCK_WINDOW_SECONDS")) * time.Second,
		},
		Storage: StorageConfig{
			Driver:        viper.GetString("STORAGE_DRIVER"),
			LocalRoot:     viper.GetString("STORAGE_LOCAL_ROOT"),
			PublicBaseURL: viper.GetString("STORAGE_PUBLIC_BASE_URL"),
			DriveFolderID: viper.GetString("DRIVE_FOLDER_ID"),
			DriveCreds:    viper.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
			Bucket:        viper.GetString("STORAGE_BUCKET"),
		},
	}
}

// IsDevelopment reports whether the server runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
