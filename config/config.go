package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type StorageConfig struct {
	Filename string `yaml:"filename" json:"filename"`
}

type ResolverConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system" json:"system"`
	Logger   LoggerConfig   `yaml:"logger" json:"logger"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
	Resolver ResolverConfig `yaml:"resolver" json:"resolver"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Workdir:  "/var/pantrykit",
			Location: "Local",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/pantrykit/pantrykit.log",
		},
		Storage: StorageConfig{
			Filename: "pantrykit.db",
		},
		Resolver: ResolverConfig{
			BaseURL: "https://world.openfoodfacts.org/api/v2/product",
			Timeout: 10,
		},
	}
}

// LoadConfig reads the YAML file at path when it exists, then applies
// PANTRYKIT_* environment overrides on top of the defaults.
func LoadConfig(path string) *AppConfig {
	cfg := DefaultConfig()
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}
	setEnvString(&cfg.System.Workdir, "PANTRYKIT_WORKDIR")
	setEnvString(&cfg.System.Location, "PANTRYKIT_LOCATION")
	setEnvString(&cfg.Logger.Mode, "PANTRYKIT_LOGGER_MODE")
	setEnvBool(&cfg.Logger.FileEnable, "PANTRYKIT_LOGGER_FILE_ENABLE")
	setEnvString(&cfg.Logger.Filename, "PANTRYKIT_LOGGER_FILENAME")
	setEnvString(&cfg.Storage.Filename, "PANTRYKIT_STORAGE_FILENAME")
	setEnvString(&cfg.Resolver.BaseURL, "PANTRYKIT_RESOLVER_BASE_URL")
	setEnvInt(&cfg.Resolver.Timeout, "PANTRYKIT_RESOLVER_TIMEOUT")
	return cfg
}

// StoragePath resolves the bolt database file under the workdir unless an
// absolute path was configured.
func (c *AppConfig) StoragePath() string {
	if filepath.IsAbs(c.Storage.Filename) {
		return c.Storage.Filename
	}
	return filepath.Join(c.System.Workdir, c.Storage.Filename)
}

// ResolverTimeout returns the configured lookup timeout as a duration.
func (c *AppConfig) ResolverTimeout() time.Duration {
	return time.Duration(c.Resolver.Timeout) * time.Second
}

func setEnvString(target *string, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*target = v
	}
}

func setEnvBool(target *bool, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*target = cast.ToBool(v)
	}
}

func setEnvInt(target *int, name string) {
	if v, ok := os.LookupEnv(name); ok {
		*target = cast.ToInt(v)
	}
}
