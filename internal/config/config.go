package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendFyne     = "fyne"
	BackendGTK      = "gtk"
	BackendHeadless = "headless"
)

var Backends = []string{BackendFyne, BackendGTK, BackendHeadless}

var (
	ErrUnknownBackend  = errors.New("unknown frontend backend")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// Config holds application configuration.
type Config struct {
	Frontend FrontendConfig `mapstructure:"frontend"`
	Poll     PollConfig     `mapstructure:"poll"`
	Log      LogConfig      `mapstructure:"log"`
}

// FrontendConfig selects and tunes the toolbar backend.
type FrontendConfig struct {
	Backend        string `mapstructure:"backend"`
	StartMinimized bool   `mapstructure:"start_minimized"`
	NativeDialog   bool   `mapstructure:"native_dialog"`
	StartDir       string `mapstructure:"start_dir"`
	// Tray parks a minimized fyne toolbar in the system tray instead of
	// showing it.
	Tray bool `mapstructure:"tray"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// RegisterFlags adds the command-line overrides Load understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a TOML config file")
	fs.String("backend", BackendFyne, "toolbar backend: "+strings.Join(Backends, ", "))
	fs.Bool("minimized", false, "start with the toolbar minimized")
	fs.Bool("native-dialog", false, "use the platform file dialog (fyne backend)")
	fs.String("start-dir", ".", "directory the Load dialog opens in")
	fs.Bool("tray", false, "park a minimized toolbar in the system tray (fyne backend)")
	fs.Duration("poll-interval", 100*time.Millisecond, "how often the host polls for a selected program")
	fs.String("log-level", "info", "debug, info, warning or error")
	fs.Bool("log-json", false, "write logs as JSON")
}

var flagKeys = map[string]string{
	"backend":       "frontend.backend",
	"minimized":     "frontend.start_minimized",
	"native-dialog": "frontend.native_dialog",
	"start-dir":     "frontend.start_dir",
	"tray":          "frontend.tray",
	"poll-interval": "poll.interval",
	"log-level":     "log.level",
	"log-json":      "log.json",
}

// Load reads configuration from defaults, file, env and flags, in rising
// precedence. Env var overrides use prefix IETOOLBAR_. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("frontend.backend", BackendFyne)
	v.SetDefault("frontend.start_minimized", false)
	v.SetDefault("frontend.native_dialog", false)
	v.SetDefault("frontend.start_dir", ".")
	v.SetDefault("frontend.tray", false)
	v.SetDefault("poll.interval", 100*time.Millisecond)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("IETOOLBAR_CONFIG")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Changed {
			cfgPath = f.Value.String()
		}
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "intuition-toolbar"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("IETOOLBAR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	known := false
	for _, b := range Backends {
		if c.Frontend.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Frontend.Backend)
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, c.Poll.Interval)
	}
	return nil
}
