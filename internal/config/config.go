package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	ImageStore  ImageStoreConfig
	Cart        CartConfig
	Shipping    ShippingConfig
	Admin       AdminConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ImageStoreConfig points the image resolver at the blob-store HTTP API.
// BaseURL is normally this server's own address but may be any host that
// serves the /images interface.
type ImageStoreConfig struct {
	BaseURL string
}

type CartConfig struct {
	// DataDir is where per-session cart files are persisted. Empty keeps
	// carts in memory only.
	DataDir string
}

type ShippingConfig struct {
	// FreeThreshold is the subtotal (PKR) at which shipping becomes free
	FreeThreshold int64
	// FlatFee is charged below the threshold
	FlatFee int64
}

type AdminConfig struct {
	// KeyHash is the bcrypt hash of the admin API key. Empty disables the
	// admin routes.
	KeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("SHIPPING_FREE_THRESHOLD", "2000")
	viper.SetDefault("SHIPPING_FLAT_FEE", "200")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		ImageStore: ImageStoreConfig{
			BaseURL: getEnvOrViper("IMAGE_STORE_URL", "http://localhost:8080"),
		},
		Cart: CartConfig{
			DataDir: getEnvOrViper("CART_DATA_DIR", "data/carts"),
		},
		Shipping: ShippingConfig{
			FreeThreshold: viper.GetInt64("SHIPPING_FREE_THRESHOLD"),
			FlatFee:       viper.GetInt64("SHIPPING_FLAT_FEE"),
		},
		Admin: AdminConfig{
			KeyHash: getEnvOrViper("ADMIN_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.Shipping.FreeThreshold < 0 || cfg.Shipping.FlatFee < 0 {
		return nil, fmt.Errorf("shipping threshold and fee must be non-negative")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
