package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/awesomewm/buildcfg/internal/buildcfg"
)

// Environment variables recognised for path relocation. Feature flags have
// no environment equivalent: an integration that was not compiled in cannot
// be enabled at runtime.
const (
	EnvLuaLibPath        = "AWESOME_LUA_LIB_PATH"
	EnvSystemConfigDir   = "XDG_CONFIG_DIR"
	EnvThemesPath        = "AWESOME_THEMES_PATH"
	EnvIconPath          = "AWESOME_ICON_PATH"
	EnvDefaultConfigFile = "AWESOME_DEFAULT_CONF"
)

// Config aggregates the resolved build configuration.
// Precedence: CLI flags > YAML file > Environment variables > Baked defaults
type Config struct {
	buildcfg.Record
}

// yamlConfig represents the YAML relocation file structure.
type yamlConfig struct {
	Paths yamlPaths `yaml:"paths"`
}

// yamlPaths represents the paths section in YAML.
type yamlPaths struct {
	LuaLib            string `yaml:"lua_lib"`
	SystemConfigDir   string `yaml:"system_config_dir"`
	Themes            string `yaml:"themes"`
	Icons             string `yaml:"icons"`
	DefaultConfigFile string `yaml:"default_config_file"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile        string
	LuaLibPath        *string
	SystemConfigDir   *string
	ThemesPath        *string
	IconPath          *string
	DefaultConfigFile *string
}

// Load resolves the build configuration from multiple sources with
// precedence: CLI flags > YAML file > Environment variables > Baked defaults.
// The final record is validated; any empty or relative path fails with the
// offending key named.
func Load(overrides *CLIOverrides) (Config, error) {
	rec, err := buildcfg.Baked()
	if err != nil {
		return Config{}, fmt.Errorf("load baked configuration: %w", err)
	}

	cfg := Config{Record: rec}

	// Apply environment variables (lowest-precedence override)
	applyEnvConfig(&cfg)

	// Load from YAML file if specified (overrides environment)
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	// Validate final configuration
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadFromFile loads path overrides from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyEnvConfig applies environment variable overrides.
func applyEnvConfig(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLuaLibPath)); v != "" {
		cfg.LuaLibPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSystemConfigDir)); v != "" {
		cfg.SystemConfigDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvThemesPath)); v != "" {
		cfg.ThemesPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvIconPath)); v != "" {
		cfg.IconPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultConfigFile)); v != "" {
		cfg.DefaultConfigFile = v
	}
}

// applyYAMLConfig applies YAML path overrides to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Paths.LuaLib != "" {
		cfg.LuaLibPath = yamlCfg.Paths.LuaLib
	}
	if yamlCfg.Paths.SystemConfigDir != "" {
		cfg.SystemConfigDir = yamlCfg.Paths.SystemConfigDir
	}
	if yamlCfg.Paths.Themes != "" {
		cfg.ThemesPath = yamlCfg.Paths.Themes
	}
	if yamlCfg.Paths.Icons != "" {
		cfg.IconPath = yamlCfg.Paths.Icons
	}
	if yamlCfg.Paths.DefaultConfigFile != "" {
		cfg.DefaultConfigFile = yamlCfg.Paths.DefaultConfigFile
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.LuaLibPath != nil && *overrides.LuaLibPath != "" {
		cfg.LuaLibPath = *overrides.LuaLibPath
	}
	if overrides.SystemConfigDir != nil && *overrides.SystemConfigDir != "" {
		cfg.SystemConfigDir = *overrides.SystemConfigDir
	}
	if overrides.ThemesPath != nil && *overrides.ThemesPath != "" {
		cfg.ThemesPath = *overrides.ThemesPath
	}
	if overrides.IconPath != nil && *overrides.IconPath != "" {
		cfg.IconPath = *overrides.IconPath
	}
	if overrides.DefaultConfigFile != nil && *overrides.DefaultConfigFile != "" {
		cfg.DefaultConfigFile = *overrides.DefaultConfigFile
	}
}
