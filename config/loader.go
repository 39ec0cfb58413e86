package config

// Viper configuration loader: reads config.yaml from the project, user config
// directory or working directory

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/boolean-maybe/sieve/search"
)

// Store drivers accepted by store.driver
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds all application configuration loaded from config.yaml
type Config struct {
	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	// Store configuration
	Store struct {
		Driver string `mapstructure:"driver"` // "file", "sqlite" or "memory"
		Dir    string `mapstructure:"dir"`    // item directory for the file driver
		DSN    string `mapstructure:"dsn"`    // database for the sqlite driver
	} `mapstructure:"store"`

	// Search configuration
	Search struct {
		SoonDays    int    `mapstructure:"soonDays"`
		ForcedQuery string `mapstructure:"forcedQuery"` // merged into every query
	} `mapstructure:"search"`

	// Appearance configuration
	Appearance struct {
		Theme string `mapstructure:"theme"` // "dark", "light", "auto"
	} `mapstructure:"appearance"`
}

var appConfig *Config

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"log-level":    "logging.level",
	"store":        "store.driver",
	"dir":          "store.dir",
	"dsn":          "store.dsn",
	"soon-days":    "search.soonDays",
	"forced-query": "search.forcedQuery",
	"theme":        "appearance.theme",
}

// LoadConfig loads configuration from config.yaml
// Priority order (first found wins): project config → user config → current directory (dev)
// An explicit file set with --config replaces the search. Flags in flags that
// were set on the command line override file and environment values.
// If config.yaml doesn't exist, it uses default values
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// Reset viper to clear any previous configuration
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	explicit := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
	}
	if explicit != "" {
		viper.SetConfigFile(explicit)
	} else {
		// first added = highest priority
		viper.AddConfigPath(GetProjectConfigDir())
		viper.AddConfigPath(GetConfigDir())
		viper.AddConfigPath(".")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && explicit == "" {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, err
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Allow environment variables to override config file
	viper.SetEnvPrefix("SIEVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindFlags(flags); err != nil {
		slog.Warn("failed to bind command line flags", "error", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, err
	}
	cfg.normalize()

	appConfig = cfg
	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("logging.level", "error")

	viper.SetDefault("store.driver", DriverFile)
	viper.SetDefault("store.dir", "")
	viper.SetDefault("store.dsn", "")

	viper.SetDefault("search.soonDays", search.DefaultSoonDays)
	viper.SetDefault("search.forcedQuery", "")

	viper.SetDefault("appearance.theme", "auto")
}

// bindFlags binds the known command line flags present in flags to viper so
// they can override config values.
func bindFlags(flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// normalize fills in derived defaults that depend on the working directory.
func (c *Config) normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Dir == "" {
		c.Store.Dir = GetItemsDir()
	}
	if c.Store.DSN == "" {
		c.Store.DSN = GetDatabaseFile()
	}
	if c.Search.SoonDays < 1 {
		c.Search.SoonDays = search.DefaultSoonDays
	}
	if c.Store.Dir != "" && !filepath.IsAbs(c.Store.Dir) {
		if abs, err := filepath.Abs(c.Store.Dir); err == nil {
			c.Store.Dir = abs
		}
	}
}

// SearchOptions returns the query options configured under search.
func (c *Config) SearchOptions() []search.Option {
	opts := []search.Option{search.WithSoonDays(c.Search.SoonDays)}
	if c.Search.ForcedQuery != "" {
		opts = append(opts, search.WithForcedQuery(c.Search.ForcedQuery))
	}
	return opts
}

// GetConfig returns the loaded configuration
// If config hasn't been loaded yet, it loads it first
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := LoadConfig(nil)
		if err != nil {
			// If loading fails, return a config with defaults
			slog.Warn("failed to load config, using defaults", "error", err)
			setDefaults()
			cfg = &Config{}
			_ = viper.Unmarshal(cfg)
			cfg.normalize()
		}
		appConfig = cfg
	}
	return appConfig
}

// GetString is a convenience method to get a string value from config
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt is a convenience method to get an integer value from config
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetTheme returns the appearance theme setting
func GetTheme() string {
	theme := viper.GetString("appearance.theme")
	if theme == "" {
		return "auto"
	}
	return theme
}

// GetEffectiveTheme resolves "auto" to actual theme based on terminal detection
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != "auto" {
		return theme
	}
	// Detect via COLORFGBG env var (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			// 0-7 = dark colors, 8+ = light colors
			if bg, err := strconv.Atoi(parts[len(parts)-1]); err == nil && bg >= 8 {
				return "light"
			}
		}
	}
	return "dark"
}
