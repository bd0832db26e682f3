package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

// Repository-level settings live in .artemis/config, an INI file with
// git-style dotted keys ("user.name", "core.bare"). User-level defaults
// live in ~/.config/artemis/config.toml.

func (r *Repo) configPath() string {
	return filepath.Join(r.ArtemisDir, "config")
}

// writeDefaultConfig creates the initial .artemis/config.
func writeDefaultConfig(artemisDir string) error {
	cfg := ini.Empty()
	core := cfg.Section("core")
	core.Key("repositoryformatversion").SetValue("0")
	core.Key("bare").SetValue("false")
	if err := cfg.SaveTo(filepath.Join(artemisDir, "config")); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ConfigGet returns the value for a dotted "section.key" name from the
// repository config.
func (r *Repo) ConfigGet(key string) (string, error) {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return "", err
	}

	cfg, err := ini.Load(r.configPath())
	if err != nil {
		return "", fmt.Errorf("config: %w", err)
	}

	val := cfg.Section(section).Key(name).String()
	if val == "" {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return val, nil
}

// ConfigSet stores a value under a dotted "section.key" name in the
// repository config.
func (r *Repo) ConfigSet(key, value string) error {
	section, name, err := splitConfigKey(key)
	if err != nil {
		return err
	}

	cfg, err := ini.Load(r.configPath())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.Section(section).Key(name).SetValue(value)

	if err := cfg.SaveTo(r.configPath()); err != nil {
		return fmt.Errorf("config: save: %w", err)
	}
	return nil
}

func splitConfigKey(key string) (section, name string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid config key %q (want section.key)", key)
	}
	return parts[0], parts[1], nil
}

// UserConfig holds user-level defaults from ~/.config/artemis/config.toml.
type UserConfig struct {
	User struct {
		Name  string `toml:"name"`
		Email string `toml:"email"`
	} `toml:"user"`
	Sign struct {
		Key string `toml:"key"`
	} `toml:"sign"`
}

// LoadUserConfig reads the user-level TOML config. A missing file yields a
// zero config without error.
func LoadUserConfig() (*UserConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &UserConfig{}, nil
	}
	return LoadUserConfigFrom(filepath.Join(home, ".config", "artemis", "config.toml"))
}

// LoadUserConfigFrom reads a user config from an explicit path.
func LoadUserConfigFrom(path string) (*UserConfig, error) {
	var cfg UserConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("user config %s: %w", path, err)
	}
	return &cfg, nil
}

// AuthorName resolves the commit author: repo config user.name first, then
// the user-level TOML, then $USER, then "unknown".
func (r *Repo) AuthorName() string {
	if name, err := r.ConfigGet("user.name"); err == nil && strings.TrimSpace(name) != "" {
		return name
	}
	if cfg, err := LoadUserConfig(); err == nil && strings.TrimSpace(cfg.User.Name) != "" {
		return cfg.User.Name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
