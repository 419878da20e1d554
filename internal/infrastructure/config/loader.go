package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/toolgate/assets"
	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/pkg/filesystem"
	"github.com/doeshing/toolgate/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TOOLGATE_CONFIG"

// FileLoader loads YAML configuration from ~/.toolgate/config.yaml (overridable via TOOLGATE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the environment or the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created from the embedded defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err := Defaults()
			if err != nil {
				return domain.Config{}, err
			}
			if err := l.Save(cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), domain.DefaultConfigDir, "config.yaml")
}

// Save writes cfg to the config path with owner-only permissions.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Defaults decodes the embedded default configuration.
func Defaults() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse embedded defaults: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

// DefaultRulesPath is where "rules init" writes and the default config points.
func DefaultRulesPath() string {
	return filepath.Join(filesystem.UserHomeDir(), domain.DefaultConfigDir, "rules.yaml")
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.Confirmation.Mode == "" {
		cfg.Confirmation.Mode = domain.ConfirmationModePrompt
	}
	if cfg.Execution.Shell == "" {
		cfg.Execution.Shell = domain.ShellAuto
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = domain.DefaultLogLevel
	}
	if cfg.Server.Transport == "" {
		cfg.Server.Transport = domain.TransportStdio
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = domain.DefaultServerPort
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
