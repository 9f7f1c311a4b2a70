package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds simulator configuration.
type Config struct {
	Display  DisplayConfig `mapstructure:"display"`
	Refresh  time.Duration `mapstructure:"refresh"`
	InitFile string        `mapstructure:"init_file"`
	Debug    bool          `mapstructure:"debug"`
	LogFile  string        `mapstructure:"log_file"`
}

// DisplayConfig describes the simulated panel in pixels.
type DisplayConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Dir returns the wristwatch configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "wristwatch")
}

// InitFile returns the path to init.lua
func InitFile() string {
	return filepath.Join(Dir(), "init.lua")
}

// Load reads config.yaml from path, or from Dir() when path is empty, then
// applies WATCH_ environment overrides. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("display.width", 128)
	v.SetDefault("display.height", 128)
	v.SetDefault("refresh", time.Second)
	v.SetDefault("init_file", InitFile())
	v.SetDefault("debug", false)
	v.SetDefault("log_file", filepath.Join(Dir(), "wristwatch.log"))

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("WATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
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

// Validate checks that the values can drive a display.
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("invalid display size %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("invalid refresh interval %v", c.Refresh)
	}
	return nil
}
