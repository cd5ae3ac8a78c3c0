// Package config resolves the effective build configuration from multiple
// sources (CLI flags, YAML relocation files, environment variables) on top
// of the baked constants, with precedence: CLI flags > YAML config >
// Environment variables > Baked defaults. Only install paths can be
// relocated; feature flags remain build-time facts.
package config
