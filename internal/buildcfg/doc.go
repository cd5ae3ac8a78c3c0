// Package buildcfg holds the build-time constants of the awesome window
// manager: install paths (Lua library, themes, icons, default rc.lua) and
// the feature toggles recording which optional integrations were compiled
// in. Values are baked at link time via -ldflags and never change after
// Baked parses them, so they are safe to read from any goroutine without
// synchronization.
package buildcfg
