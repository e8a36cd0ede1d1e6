package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "HOOKSHOT"
	configName = "hookshot"
)

var (
	ErrInvalidFixedRate = errors.New("config: fixed rate must be between 30 and 480")
	ErrInvalidSize      = errors.New("config: window size must be positive")
	ErrInvalidLogLevel  = errors.New("config: unknown log level")
	ErrInvalidLogFormat = errors.New("config: log format must be console or json")
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds the runtime settings of the game.
type Config struct {
	Level     string `mapstructure:"level"`
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"logLevel"`
	LogFormat string `mapstructure:"logFormat"`
	FixedHz   int    `mapstructure:"fixedHz"`
	Watch     bool   `mapstructure:"watch"`
	SentryDSN string `mapstructure:"sentryDsn"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	SkipMenu  bool   `mapstructure:"skipMenu"`
}

// PrettyLogs reports whether logs go to the human readable console writer
// rather than JSON lines.
func (c Config) PrettyLogs() bool {
	return !strings.EqualFold(c.LogFormat, LogFormatJSON)
}

// FixedStep returns the physics step length in seconds.
func (c Config) FixedStep() float64 {
	return 1.0 / float64(c.FixedHz)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("level", "demo")
	v.SetDefault("debug", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFormat", LogFormatConsole)
	v.SetDefault("fixedHz", 120)
	v.SetDefault("watch", false)
	v.SetDefault("sentryDsn", "")
	v.SetDefault("width", 1280)
	v.SetDefault("height", 720)
	v.SetDefault("skipMenu", false)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("hookshot", pflag.ContinueOnError)
	fs.String("config", "", "path to a hookshot.yaml config file")
	fs.String("level", "demo", "level to load when Play is pressed")
	fs.Bool("debug", false, "draw the debug overlay")
	fs.String("log-level", "info", "trace, debug, info, warn or error")
	fs.String("log-format", LogFormatConsole, "console or json")
	fs.Int("fixed-hz", 120, "physics steps per second")
	fs.Bool("watch", false, "hot reload prefabs from disk")
	fs.String("sentry-dsn", "", "report crashes to this Sentry DSN")
	fs.Int("width", 1280, "window width")
	fs.Int("height", 720, "window height")
	fs.Bool("skip-menu", false, "start in the level instead of the main menu")
	return fs
}

// Load merges defaults, the optional hookshot.yaml, HOOKSHOT_* environment
// variables and command line flags, in increasing priority.
func Load(args []string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: parse flags: %w", err)
	}
	for key, flag := range map[string]string{
		"level":     "level",
		"debug":     "debug",
		"logLevel":  "log-level",
		"logFormat": "log-format",
		"fixedHz":   "fixed-hz",
		"watch":     "watch",
		"sentryDsn": "sentry-dsn",
		"width":     "width",
		"height":    "height",
		"skipMenu":  "skip-menu",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("config: bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.FixedHz < 30 || c.FixedHz > 480 {
		return fmt.Errorf("%w: got %d", ErrInvalidFixedRate, c.FixedHz)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return nil
}
