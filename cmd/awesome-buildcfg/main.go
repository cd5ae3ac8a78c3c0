package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/awesomewm/buildcfg/internal/application"
	"github.com/awesomewm/buildcfg/internal/config"
	"github.com/awesomewm/buildcfg/internal/logging"
)

func main() {
	kingpinApp := kingpin.New("awesome-buildcfg", "Query the build-time configuration of the awesome window manager")
	configFile := kingpinApp.Flag("config", "Path to YAML relocation file").String()
	verbose := kingpinApp.Flag("verbose", "Enable debug logging").Short('v').Bool()
	luaLibPath := kingpinApp.Flag("lua-lib-path", "Override the Lua library path").String()
	systemConfigDir := kingpinApp.Flag("system-config-dir", "Override the system configuration directory").String()
	themesPath := kingpinApp.Flag("themes-path", "Override the themes path").String()
	iconPath := kingpinApp.Flag("icon-path", "Override the icon path").String()
	defaultConfigFile := kingpinApp.Flag("default-config-file", "Override the default config file path").String()

	getCmd := kingpinApp.Command("get", "Print a single configuration value")
	getKey := getCmd.Arg("key", "Configuration key (see the keys command)").Required().String()

	dumpCmd := kingpinApp.Command("dump", "Print every configuration value")
	dumpFormat := dumpCmd.Flag("format", "Output format").Default(application.FormatText).
		Enum(application.FormatText, application.FormatJSON, application.FormatEnv)

	kingpinApp.Command("check", "Verify that every configured path exists on disk")
	kingpinApp.Command("keys", "List the known configuration keys")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *luaLibPath != "" {
		overrides.LuaLibPath = luaLibPath
	}

	if *systemConfigDir != "" {
		overrides.SystemConfigDir = systemConfigDir
	}

	if *themesPath != "" {
		overrides.ThemesPath = themesPath
	}

	if *iconPath != "" {
		overrides.IconPath = iconPath
	}

	if *defaultConfigFile != "" {
		overrides.DefaultConfigFile = defaultConfigFile
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load(overrides)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	app := application.New(cfg, logger)

	if err := run(app, command, *getKey, *dumpFormat, os.Stdout); err != nil {
		logger.Fatal("command failed", zap.String("command", command), zap.Error(err))
	}
}

// run dispatches a parsed command to the matching application operation.
func run(app *application.App, command, key, format string, w io.Writer) error {
	switch command {
	case "get":
		return app.Get(w, key)
	case "dump":
		return app.Dump(w, format)
	case "check":
		return app.Check(w)
	case "keys":
		return app.Keys(w)
	}
	return fmt.Errorf("unknown command %q", command)
}
