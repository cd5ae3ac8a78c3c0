package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/awesomewm/buildcfg/internal/config"
	"github.com/awesomewm/buildcfg/internal/registry"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvLuaLibPath,
		config.EnvSystemConfigDir,
		config.EnvThemesPath,
		config.EnvIconPath,
		config.EnvDefaultConfigFile,
	} {
		t.Setenv(key, "")
	}
}

// newApp resolves a configuration against the baked defaults. Environment
// is cleared so tests see deterministic values.
func newApp(t *testing.T) *App {
	t.Helper()
	clearEnv(t)

	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return New(cfg, zaptest.NewLogger(t))
}

// newInstalledApp resolves a configuration whose paths all exist on disk,
// backed by a temporary install tree.
func newInstalledApp(t *testing.T) (*App, string) {
	t.Helper()
	clearEnv(t)

	root := t.TempDir()
	for _, dir := range []string{"lib", "themes", "icons", "xdg/awesome"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	rcFile := filepath.Join(root, "xdg", "awesome", "rc.lua")
	if err := os.WriteFile(rcFile, []byte("-- stock config\n"), 0o644); err != nil {
		t.Fatalf("write rc.lua: %v", err)
	}

	t.Setenv(config.EnvLuaLibPath, filepath.Join(root, "lib"))
	t.Setenv(config.EnvSystemConfigDir, filepath.Join(root, "xdg"))
	t.Setenv(config.EnvThemesPath, filepath.Join(root, "themes"))
	t.Setenv(config.EnvIconPath, filepath.Join(root, "icons"))
	t.Setenv(config.EnvDefaultConfigFile, rcFile)

	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return New(cfg, zaptest.NewLogger(t)), root
}

func TestGet(t *testing.T) {
	app := newApp(t)

	t.Run("path key", func(t *testing.T) {
		var buf bytes.Buffer
		if err := app.Get(&buf, registry.KeyDefaultConfigFile); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "/etc/xdg/awesome/rc.lua" {
			t.Fatalf("unexpected value: %s", got)
		}
	})

	t.Run("flag key", func(t *testing.T) {
		var buf bytes.Buffer
		if err := app.Get(&buf, registry.KeyWithXCBErrors); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "false" {
			t.Fatalf("unexpected value: %s", got)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		var buf bytes.Buffer
		if err := app.Get(&buf, "nope"); !errors.Is(err, registry.ErrUnknownKey) {
			t.Fatalf("expected ErrUnknownKey, got %v", err)
		}
	})
}

func TestKeys(t *testing.T) {
	app := newApp(t)

	var buf bytes.Buffer
	if err := app.Keys(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 keys, got %d: %v", len(lines), lines)
	}
	if lines[0] != registry.KeyLuaLibPath {
		t.Fatalf("unexpected first key: %s", lines[0])
	}
}

func TestDumpText(t *testing.T) {
	app := newApp(t)

	var buf bytes.Buffer
	if err := app.Dump(&buf, FormatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "default-config-file = /etc/xdg/awesome/rc.lua") {
		t.Fatalf("missing default config line in:\n%s", out)
	}
	if !strings.Contains(out, "with-dbus") || !strings.Contains(out, "= true") {
		t.Fatalf("missing feature flag line in:\n%s", out)
	}
}

func TestDumpJSON(t *testing.T) {
	app := newApp(t)

	var buf bytes.Buffer
	if err := app.Dump(&buf, FormatJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		LuaLibPath        string `json:"luaLibPath"`
		DefaultConfigFile string `json:"defaultConfigFile"`
		WithDBus          bool   `json:"withDbus"`
		WithXCBErrors     bool   `json:"withXcbErrors"`
		HasExecinfo       bool   `json:"hasExecinfo"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unable to parse JSON dump: %v", err)
	}

	if payload.LuaLibPath != "/usr/share/awesome/lib" {
		t.Fatalf("unexpected lua lib path: %s", payload.LuaLibPath)
	}
	if payload.DefaultConfigFile != "/etc/xdg/awesome/rc.lua" {
		t.Fatalf("unexpected default config file: %s", payload.DefaultConfigFile)
	}
	if !payload.WithDBus || payload.WithXCBErrors || !payload.HasExecinfo {
		t.Fatalf("unexpected feature flags: %+v", payload)
	}
}

func TestDumpEnvRoundTrips(t *testing.T) {
	app, root := newInstalledApp(t)

	var buf bytes.Buffer
	if err := app.Dump(&buf, FormatEnv); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-apply the emitted path variables and resolve again.
	clearEnv(t)
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		name, raw, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("malformed env line: %s", line)
		}
		if strings.HasPrefix(name, "AWESOME_WITH_") || strings.HasPrefix(name, "AWESOME_HAS_") {
			continue
		}
		t.Setenv(name, strings.Trim(raw, "'"))
	}

	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LuaLibPath != filepath.Join(root, "lib") {
		t.Fatalf("round trip lost lua lib path: %s", cfg.LuaLibPath)
	}
	if cfg.DefaultConfigFile != filepath.Join(root, "xdg", "awesome", "rc.lua") {
		t.Fatalf("round trip lost default config file: %s", cfg.DefaultConfigFile)
	}
}

func TestDumpUnknownFormat(t *testing.T) {
	app := newApp(t)

	var buf bytes.Buffer
	if err := app.Dump(&buf, "xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCheckAllPresent(t *testing.T) {
	app, _ := newInstalledApp(t)

	var buf bytes.Buffer
	if err := app.Check(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "missing") {
		t.Fatalf("expected no missing paths in:\n%s", out)
	}
	if !strings.Contains(out, "features: dbus=1 xcb-errors=0 execinfo=1") {
		t.Fatalf("missing feature summary in:\n%s", out)
	}
}

func TestCheckReportsMissing(t *testing.T) {
	app, root := newInstalledApp(t)

	if err := os.RemoveAll(filepath.Join(root, "themes")); err != nil {
		t.Fatalf("remove themes dir: %v", err)
	}

	var buf bytes.Buffer
	err := app.Check(&buf)
	if err == nil {
		t.Fatalf("expected error for missing path")
	}
	if !strings.Contains(buf.String(), "missing themes-path") {
		t.Fatalf("expected themes-path reported missing in:\n%s", buf.String())
	}
}
