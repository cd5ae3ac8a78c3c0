package application

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/awesomewm/buildcfg/internal/config"
	"github.com/awesomewm/buildcfg/internal/registry"
)

// Supported dump output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatEnv  = "env"
)

// App encapsulates the resolved configuration, the lookup registry, and the
// logger behind the CLI commands.
type App struct {
	cfg      config.Config
	registry *registry.Registry
	logger   *zap.Logger
}

// New wires the application from the resolved configuration.
func New(cfg config.Config, logger *zap.Logger) *App {
	return &App{
		cfg:      cfg,
		registry: registry.New(cfg.Record),
		logger:   logger,
	}
}

// Get writes the value of a single configuration key.
func (a *App) Get(w io.Writer, key string) error {
	value, err := a.registry.Lookup(key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, value.String())
	return err
}

// Keys writes the canonical key names, one per line.
func (a *App) Keys(w io.Writer) error {
	for _, key := range a.registry.Keys() {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return err
		}
	}
	return nil
}

// Dump writes every configuration value in the requested format.
func (a *App) Dump(w io.Writer, format string) error {
	a.logger.Debug("dumping configuration", zap.String("format", format))

	switch format {
	case FormatText:
		return a.dumpText(w)
	case FormatJSON:
		return a.dumpJSON(w)
	case FormatEnv:
		return a.dumpEnv(w)
	default:
		return fmt.Errorf("unsupported dump format %q", format)
	}
}

func (a *App) dumpText(w io.Writer) error {
	keys := a.registry.Keys()

	width := 0
	for _, key := range keys {
		if len(key) > width {
			width = len(key)
		}
	}

	for _, key := range keys {
		value, err := a.registry.Lookup(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*s = %s\n", width, key, value.String()); err != nil {
			return err
		}
	}
	return nil
}

// dumpPayload fixes the JSON field order for machine consumers.
type dumpPayload struct {
	LuaLibPath        string `json:"luaLibPath"`
	SystemConfigDir   string `json:"systemConfigDir"`
	ThemesPath        string `json:"themesPath"`
	IconPath          string `json:"iconPath"`
	DefaultConfigFile string `json:"defaultConfigFile"`
	WithDBus          bool   `json:"withDbus"`
	WithXCBErrors     bool   `json:"withXcbErrors"`
	HasExecinfo       bool   `json:"hasExecinfo"`
}

func (a *App) dumpJSON(w io.Writer) error {
	payload := dumpPayload{
		LuaLibPath:        a.cfg.LuaLibPath,
		SystemConfigDir:   a.cfg.SystemConfigDir,
		ThemesPath:        a.cfg.ThemesPath,
		IconPath:          a.cfg.IconPath,
		DefaultConfigFile: a.cfg.DefaultConfigFile,
		WithDBus:          a.cfg.WithDBus,
		WithXCBErrors:     a.cfg.WithXCBErrors,
		HasExecinfo:       a.cfg.HasExecinfo,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// dumpEnv emits shell-evaluable export lines. The path variables use the
// same names the resolution layer reads, so the output round-trips through
// a fresh Load. Flags are informational and rendered as 1/0.
func (a *App) dumpEnv(w io.Writer) error {
	lines := []struct {
		name  string
		value string
	}{
		{config.EnvLuaLibPath, a.cfg.LuaLibPath},
		{config.EnvSystemConfigDir, a.cfg.SystemConfigDir},
		{config.EnvThemesPath, a.cfg.ThemesPath},
		{config.EnvIconPath, a.cfg.IconPath},
		{config.EnvDefaultConfigFile, a.cfg.DefaultConfigFile},
		{"AWESOME_WITH_DBUS", boolAsEnv(a.cfg.WithDBus)},
		{"AWESOME_WITH_XCB_ERRORS", boolAsEnv(a.cfg.WithXCBErrors)},
		{"AWESOME_HAS_EXECINFO", boolAsEnv(a.cfg.HasExecinfo)},
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s='%s'\n", line.name, line.value); err != nil {
			return err
		}
	}
	return nil
}

func boolAsEnv(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// Check re-validates the resolved record and verifies that every configured
// path exists on disk, writing a per-key report. It returns an error when
// the record is invalid or any path is missing.
func (a *App) Check(w io.Writer) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	paths := []struct {
		key   string
		value string
	}{
		{registry.KeyLuaLibPath, a.cfg.LuaLibPath},
		{registry.KeySystemConfigDir, a.cfg.SystemConfigDir},
		{registry.KeyThemesPath, a.cfg.ThemesPath},
		{registry.KeyIconPath, a.cfg.IconPath},
		{registry.KeyDefaultConfigFile, a.cfg.DefaultConfigFile},
	}

	missing := 0
	for _, p := range paths {
		status := "ok"
		if _, err := os.Stat(p.value); err != nil {
			status = "missing"
			missing++
			a.logger.Debug("path check failed", zap.String("key", p.key), zap.Error(err))
		}
		if _, err := fmt.Fprintf(w, "%-7s %s = %s\n", status, p.key, p.value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "features: dbus=%s xcb-errors=%s execinfo=%s\n",
		boolAsEnv(a.cfg.WithDBus),
		boolAsEnv(a.cfg.WithXCBErrors),
		boolAsEnv(a.cfg.HasExecinfo),
	); err != nil {
		return err
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d configured paths missing", missing, len(paths))
	}
	return nil
}
