package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/powertray/internal/errors"
	"codeberg.org/mutker/powertray/internal/logger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "warning"
	DefaultBackend  = "auto"
	DefaultTray     = "auto"
	DefaultIconPath = "./icons/icon.png"

	configName       = "powertray"
	defaultEnvPrefix = "POWERTRAY"
)

// Config holds the applet settings. The sampling interval and the
// displayed unit are fixed and intentionally not part of it.
type Config struct {
	Debug    bool   `mapstructure:"debug"`
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`
	Backend  string `mapstructure:"backend"`
	Tray     string `mapstructure:"tray"`
	IconPath string `mapstructure:"icon"`
}

// Load reads configuration from the config file, the environment and
// the given command line arguments, in increasing order of precedence.
func Load(args []string, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := &options{
		envPrefix:   defaultEnvPrefix,
		searchPaths: defaultSearchPaths(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
		}
	}

	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	configFlag := fs.String("config", "", "Path to the configuration file")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.String("backend", DefaultBackend, "Power source backend (auto, battery, upower)")
	fs.String("tray", DefaultTray, "Tray backend (auto, systray, headless)")
	fs.String("icon", DefaultIconPath, "Path to the tray icon (PNG)")

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"debug":     "debug",
		"verbose":   "verbose",
		"log_level": "log-level",
		"backend":   "backend",
		"tray":      "tray",
		"icon":      "icon",
	}
	for key, flagName := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	if err := readConfigFile(v, o, *configFlag); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func readConfigFile(v *viper.Viper, o *options, flagPath string) error {
	errFactory := errors.New()

	path := o.configPath
	if flagPath != "" {
		path = flagPath
	}
	if path == "" {
		path = os.Getenv(o.envPrefix + "_CONFIG")
	}

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		for _, dir := range o.searchPaths {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}

		return errFactory.Wrap(errors.ErrReadConfig, err)
	}

	return nil
}

func defaultSearchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configName))
	}

	return append(paths, "/etc")
}

// Validate checks the values that cannot be checked by their consumers
func (c *Config) Validate() error {
	if !LogLevel(c.LogLevel).IsValid() {
		return errors.New().WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.IconPath == "" {
		return errors.New().WithMessage(errors.ErrInvalidConfig, "icon path must not be empty")
	}

	return nil
}

// Level resolves the effective log level; --debug and --verbose win
// over an explicit log level.
func (c *Config) Level() logger.LogLevel {
	switch {
	case c.Debug:
		return logger.DebugLevel
	case c.Verbose:
		return logger.InfoLevel
	}

	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.WarnLevel
	}

	return level
}
