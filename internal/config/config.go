package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Хранилище
	StoreBackend string `env:"STORE_BACKEND"` // memory|file|sqlite|gorm
	StorePath    string `env:"STORE_PATH"`
	StoreKey     string `env:"STORE_KEY"`
	DatabaseDSN  string `env:"DATABASE_URI"` // только для gorm

	// Правила записей
	PasswordMode     string `env:"PASSWORD_MODE"` // plain|bcrypt
	ImageMaxMB       int    `env:"IMAGE_MAX_MB"`
	PlaceholderImage string `env:"PLACEHOLDER_IMAGE"`

	// HTTP
	BaseURL string `env:"BASE_URL"`

	Version bool `env:"-"` // show version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "storage backend: memory|file|sqlite|gorm")
	flag.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "directory for file/sqlite storage")
	flag.StringVar(&cfg.StoreKey, "store-key", cfg.StoreKey, "storage key holding the donation list")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN for the gorm backend (sqlite path or postgres://)")
	flag.StringVar(&cfg.PasswordMode, "password-mode", cfg.PasswordMode, "password storage: plain|bcrypt")
	flag.IntVar(&cfg.ImageMaxMB, "image-max-mb", cfg.ImageMaxMB, "max image upload size in MiB")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "HTTP listen address host:port")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

const defaultImageMaxMB = 5

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func (cfg *Config) applyDefaults() {
	switch cfg.StoreBackend {
	case "memory", "file", "sqlite", "gorm":
	default:
		cfg.StoreBackend = "sqlite"
	}
	if cfg.StorePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.StorePath = filepath.Join(dir, "ShareAMeal")
	}
	if cfg.StoreKey == "" {
		cfg.StoreKey = "donations"
	}
	if cfg.StoreBackend == "gorm" && cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filepath.Join(cfg.StorePath, "sharemeal-gorm.db")
	}
	if cfg.PasswordMode == "" {
		cfg.PasswordMode = "plain"
	}
	if cfg.ImageMaxMB <= 0 {
		cfg.ImageMaxMB = defaultImageMaxMB
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
}

// ImageMaxBytes: лимит изображения в байтах.
func (cfg *Config) ImageMaxBytes() int64 {
	if cfg.ImageMaxMB <= 0 {
		return defaultImageMaxMB * 1024 * 1024
	}
	return int64(cfg.ImageMaxMB) * 1024 * 1024
}
