package registry

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/awesomewm/buildcfg/internal/buildcfg"
)

// Canonical lookup keys, one per build-configuration constant.
const (
	KeyLuaLibPath        = "lua-lib-path"
	KeySystemConfigDir   = "system-config-dir"
	KeyThemesPath        = "themes-path"
	KeyIconPath          = "icon-path"
	KeyDefaultConfigFile = "default-config-file"
	KeyWithDBus          = "with-dbus"
	KeyWithXCBErrors     = "with-xcb-errors"
	KeyHasExecinfo       = "has-execinfo"
)

// ErrUnknownKey is returned when a lookup names a key that does not exist.
// Lookups of defined keys cannot fail; this only surfaces user typos.
var ErrUnknownKey = errors.New("unknown configuration key")

// keyOrder fixes the order in which keys are listed and dumped.
var keyOrder = []string{
	KeyLuaLibPath,
	KeySystemConfigDir,
	KeyThemesPath,
	KeyIconPath,
	KeyDefaultConfigFile,
	KeyWithDBus,
	KeyWithXCBErrors,
	KeyHasExecinfo,
}

// Kind discriminates the value types held by the registry.
type Kind int

const (
	KindString Kind = iota
	KindBool
)

// Value is a single configuration constant, either a path string or a
// feature flag.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
}

// String renders the value for display: the path itself for strings,
// "true" or "false" for flags.
func (v Value) String() string {
	if v.Kind == KindBool {
		return strconv.FormatBool(v.Bool)
	}
	return v.Str
}

// Registry serves constant lookups over a resolved record. It is built once
// and never mutated afterwards, so it is safe for unsynchronized concurrent
// reads.
type Registry struct {
	values map[string]Value
}

// New builds a registry from the resolved record.
func New(rec buildcfg.Record) *Registry {
	return &Registry{
		values: map[string]Value{
			KeyLuaLibPath:        {Kind: KindString, Str: rec.LuaLibPath},
			KeySystemConfigDir:   {Kind: KindString, Str: rec.SystemConfigDir},
			KeyThemesPath:        {Kind: KindString, Str: rec.ThemesPath},
			KeyIconPath:          {Kind: KindString, Str: rec.IconPath},
			KeyDefaultConfigFile: {Kind: KindString, Str: rec.DefaultConfigFile},
			KeyWithDBus:          {Kind: KindBool, Bool: rec.WithDBus},
			KeyWithXCBErrors:     {Kind: KindBool, Bool: rec.WithXCBErrors},
			KeyHasExecinfo:       {Kind: KindBool, Bool: rec.HasExecinfo},
		},
	}
}

// Lookup returns the value for a canonical key.
func (r *Registry) Lookup(key string) (Value, error) {
	value, ok := r.values[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return value, nil
}

// Keys returns the canonical key names in stable order. The returned slice
// is a fresh copy on every call.
func (r *Registry) Keys() []string {
	out := make([]string, len(keyOrder))
	copy(out, keyOrder)
	return out
}
