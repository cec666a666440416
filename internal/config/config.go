package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string `toml:"listen_addr"`
	TotalUnits int    `toml:"total_units"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	MetricsEnabled bool   `toml:"metrics_enabled"`
	MetricsPath    string `toml:"metrics_path"`

	// flash cookie keys; generated at startup when empty
	FlashHashKey  []byte `toml:"-"`
	FlashBlockKey []byte `toml:"-"`

	Facilities []FacilitySeed `toml:"facilities"`
}

// FacilitySeed is a facility registered at startup from the config file.
type FacilitySeed struct {
	Name         string `toml:"name"`
	Type         string `toml:"type"`
	Capacity     int    `toml:"capacity"`
	SeatType     string `toml:"seat_type"`
	HasProjector bool   `toml:"has_projector"`
}

func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		TotalUnits:     100,
		LogLevel:       "info",
		LogFormat:      "text",
		MetricsEnabled: true,
		MetricsPath:    "/metrics",
	}
}

// Load layers defaults, the optional TOML file at path, an optional .env file
// and the process environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf(".env: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	cfg.ListenAddr = getenv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("LOG_FORMAT", cfg.LogFormat)
	cfg.MetricsPath = getenv("METRICS_PATH", cfg.MetricsPath)

	if v := getenv("TOTAL_UNITS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TOTAL_UNITS")
		}
		cfg.TotalUnits = n
	}
	if v := getenv("METRICS_ENABLED", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED")
		}
		cfg.MetricsEnabled = b
	}

	hashKey := getenv("FLASH_HASH_KEY", "")
	blockKey := getenv("FLASH_BLOCK_KEY", "")
	if hashKey == "" && blockKey == "" {
		return nil
	}
	if hashKey == "" || blockKey == "" {
		return fmt.Errorf("FLASH_HASH_KEY and FLASH_BLOCK_KEY must be set together")
	}
	var err error
	cfg.FlashHashKey, err = decodeB64(hashKey)
	if err != nil {
		return fmt.Errorf("FLASH_HASH_KEY: %w", err)
	}
	cfg.FlashBlockKey, err = decodeB64(blockKey)
	if err != nil {
		return fmt.Errorf("FLASH_BLOCK_KEY: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.TotalUnits < 1 {
		return fmt.Errorf("total_units must be >= 1")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr required")
	}
	if c.MetricsEnabled && !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("metrics_path must start with /")
	}
	switch n := len(c.FlashBlockKey); n {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("FLASH_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", n)
	}
	for i, f := range c.Facilities {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("facilities[%d]: name required", i)
		}
		if f.Capacity < 1 {
			return fmt.Errorf("facilities[%d] %q: capacity must be >= 1", i, f.Name)
		}
	}
	return nil
}

func decodeB64(s string) ([]byte, error) {
	if b, err := os.ReadFile(s); err == nil {
		// allow pointing to file path for k8s secret mounts
		s = string(b)
	}
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
