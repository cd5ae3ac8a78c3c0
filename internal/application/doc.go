// Package application provides application initialization and dependency
// wiring. It builds the lookup registry from the resolved configuration and
// implements the operations behind the CLI commands (get, keys, dump,
// check), keeping the main package focused on flag parsing and
// orchestration.
package application
