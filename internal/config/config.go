// Package config loads settings from an optional env-style file and
// SANPLAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/spf13/viper"
)

const envPrefix = "SANPLAY"

// Archive backends.
const (
	ArchiveNone   = "none"
	ArchiveMemory = "memory"
	ArchiveRedis  = "redis"
	ArchiveMongo  = "mongo"
)

// Config holds every setting; keys match the env file and, prefixed with
// SANPLAY_, the environment.
type Config struct {
	Engine         string `mapstructure:"ENGINE"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogDevelopment bool   `mapstructure:"LOG_DEVELOPMENT"`
	Archive        string `mapstructure:"ARCHIVE"`
	RedisUrl       string `mapstructure:"REDIS_URL"`
	MongoUri       string `mapstructure:"MONGO_URI"`
	MongoDatabase  string `mapstructure:"MONGO_DATABASE"`
	HttpAddr       string `mapstructure:"HTTP_ADDR"`
	SvgPath        string `mapstructure:"SVG_PATH"`
	PdfPath        string `mapstructure:"PDF_PATH"`
	MaxImportSize  string `mapstructure:"MAX_IMPORT_SIZE"`
}

var defaults = map[string]any{
	"ENGINE":          "corentings",
	"LOG_LEVEL":       "info",
	"LOG_DEVELOPMENT": false,
	"ARCHIVE":         ArchiveNone,
	"REDIS_URL":       "localhost:6379",
	"MONGO_URI":       "mongodb://localhost:27017",
	"MONGO_DATABASE":  "sanplay",
	"HTTP_ADDR":       ":8080",
	"SVG_PATH":        "board.svg",
	"PDF_PATH":        "scoresheet.pdf",
	"MAX_IMPORT_SIZE": "1MB",
}

// Setup reads cfgPath when it exists, then lets SANPLAY_<KEY> environment
// variables override it. An empty path skips the file.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Archive = strings.ToLower(cfg.Archive)
	return &cfg, nil
}

// ImportLimit parses MaxImportSize ("512KB", "1MB") into bytes.
func (c Config) ImportLimit() (int64, error) {
	size, err := bytesize.Parse(c.MaxImportSize)
	if err != nil {
		return 0, fmt.Errorf("MAX_IMPORT_SIZE: %w", err)
	}
	if size < bytesize.B {
		return 0, fmt.Errorf("MAX_IMPORT_SIZE: %s is too small", c.MaxImportSize)
	}
	return int64(size), nil
}
