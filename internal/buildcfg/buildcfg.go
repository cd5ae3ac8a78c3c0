package buildcfg

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// The values below are fixed when the binary is built. Packagers relocate
// an install by overriding them at link time, e.g.:
//
//	go build -ldflags "-X github.com/awesomewm/buildcfg/internal/buildcfg.luaLibPath=/opt/awesome/lib"
//
// The linker can only inject strings, so the feature toggles hold boolean
// literals and are parsed by Baked.
var (
	luaLibPath        = "/usr/share/awesome/lib"
	systemConfigDir   = "/etc/xdg"
	themesPath        = "/usr/share/awesome/themes"
	iconPath          = "/usr/share/awesome/icons"
	defaultConfigFile = "/etc/xdg/awesome/rc.lua"

	withDBus      = "true"
	withXCBErrors = "false"
	hasExecinfo   = "true"
)

var (
	// ErrMissingValue indicates a required path was emptied by a broken build or packaging step.
	ErrMissingValue = errors.New("missing required configuration value")
	// ErrRelativePath indicates a configured install path is not absolute.
	ErrRelativePath = errors.New("configuration paths must be absolute")
	// ErrInvalidFlag indicates a feature toggle holds something other than a boolean literal.
	ErrInvalidFlag = errors.New("feature flags must be boolean literals")
)

// Record is the complete set of build-configuration constants: the install
// paths and the feature toggles compiled into the window manager. It is a
// plain value type; consumers receive independent copies and the underlying
// values never change for the lifetime of the process.
type Record struct {
	LuaLibPath        string
	SystemConfigDir   string
	ThemesPath        string
	IconPath          string
	DefaultConfigFile string

	WithDBus      bool
	WithXCBErrors bool
	HasExecinfo   bool
}

// Baked parses the link-time values into a Record and validates them.
// With an untouched build the error path is unreachable; a packaging step
// that injects an empty path, a relative path, or a malformed boolean fails
// here with the offending value named.
func Baked() (Record, error) {
	rec := Record{
		LuaLibPath:        luaLibPath,
		SystemConfigDir:   systemConfigDir,
		ThemesPath:        themesPath,
		IconPath:          iconPath,
		DefaultConfigFile: defaultConfigFile,
	}

	var err error
	if rec.WithDBus, err = parseFlag("with-dbus", withDBus); err != nil {
		return Record{}, err
	}
	if rec.WithXCBErrors, err = parseFlag("with-xcb-errors", withXCBErrors); err != nil {
		return Record{}, err
	}
	if rec.HasExecinfo, err = parseFlag("has-execinfo", hasExecinfo); err != nil {
		return Record{}, err
	}

	if err := rec.Validate(); err != nil {
		return Record{}, err
	}

	return rec, nil
}

// Validate checks every path in the record: each must be non-empty and
// absolute. The first violation is reported with its key name.
func (r Record) Validate() error {
	for _, p := range []struct {
		name  string
		value string
	}{
		{"lua-lib-path", r.LuaLibPath},
		{"system-config-dir", r.SystemConfigDir},
		{"themes-path", r.ThemesPath},
		{"icon-path", r.IconPath},
		{"default-config-file", r.DefaultConfigFile},
	} {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%s: %w", p.name, ErrMissingValue)
		}
		if !filepath.IsAbs(p.value) {
			return fmt.Errorf("%s %q: %w", p.name, p.value, ErrRelativePath)
		}
	}
	return nil
}

// DefaultConfigDir returns the directory holding the default config file,
// the location a first-run setup copies the stock rc.lua from.
func (r Record) DefaultConfigDir() string {
	return filepath.Dir(r.DefaultConfigFile)
}

func parseFlag(name, raw string) (bool, error) {
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%s %q: %w", name, raw, ErrInvalidFlag)
	}
	return value, nil
}
