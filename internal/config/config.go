package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// BuildAPIURL is the API root baked in at build time:
//
//	go build -ldflags "-X github.com/jask/artisanmap/internal/config.BuildAPIURL=https://api.example.mx"
var BuildAPIURL = ""

const (
	envPrefix = "ARTISANMAP"

	emulatorLoopback = "http://10.0.2.2:4000"
	desktopLoopback  = "http://localhost:4000"
)

// Config holds application configuration.
type Config struct {
	API APIConfig
	Map MapConfig
	UI  UIConfig
	Log LogConfig
}

// APIConfig holds remote directory settings.
type APIConfig struct {
	URL      string
	Platform string
	Timeout  time.Duration
}

// MapConfig selects the map surface and initial viewport.
type MapConfig struct {
	Provider  string
	CenterLat float64 `mapstructure:"center_lat"`
	CenterLng float64 `mapstructure:"center_lng"`
	LatDelta  float64 `mapstructure:"lat_delta"`
	LngDelta  float64 `mapstructure:"lng_delta"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale        string
	UnmountOnBlur bool `mapstructure:"unmount_on_blur"`
}

// LogConfig holds logging settings. An empty path disables logging, "-" means stderr.
type LogConfig struct {
	Path  string
	Level string
}

// BaseURL is the effective API root.
func (c Config) BaseURL() string {
	return ResolveBaseURL(c.API.Platform, c.API.URL)
}

// ResolveBaseURL picks the API root: a non-empty override wins, otherwise the
// loopback address reachable from the target platform. The android emulator
// sees the host at 10.0.2.2.
func ResolveBaseURL(platform, override string) string {
	if o := strings.TrimRight(strings.TrimSpace(override), "/"); o != "" {
		return o
	}
	if strings.EqualFold(strings.TrimSpace(platform), "android") {
		return emulatorLoopback
	}
	return desktopLoopback
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	if p := os.Getenv(envPrefix + "_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "artisanmap", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix ARTISANMAP_.
// A missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", BuildAPIURL)
	v.SetDefault("api.platform", runtime.GOOS)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("map.provider", "grid")
	v.SetDefault("map.center_lat", 20.0522)
	v.SetDefault("map.center_lng", -99.3419)
	v.SetDefault("map.lat_delta", 0.05)
	v.SetDefault("map.lng_delta", 0.05)
	v.SetDefault("ui.locale", "es")
	v.SetDefault("ui.unmount_on_blur", false)
	v.SetDefault("log.path", filepath.Join(stateHome(), "artisanmap", "artisanmap.log"))
	v.SetDefault("log.level", "info")
}

// Save writes cfg as TOML, creating the config directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.url", cfg.API.URL)
	v.Set("api.platform", cfg.API.Platform)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("map.provider", cfg.Map.Provider)
	v.Set("map.center_lat", cfg.Map.CenterLat)
	v.Set("map.center_lng", cfg.Map.CenterLng)
	v.Set("map.lat_delta", cfg.Map.LatDelta)
	v.Set("map.lng_delta", cfg.Map.LngDelta)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.unmount_on_blur", cfg.UI.UnmountOnBlur)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	return os.IsNotExist(err)
}

func configHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}
