package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"CollageBoard/internal/state"
)

// Config holds application configuration.
type Config struct {
	Editor  EditorConfig
	Catalog CatalogConfig
	Bridge  BridgeConfig
}

// EditorConfig holds state engine limits.
type EditorConfig struct {
	MinScale     float32 `mapstructure:"min_scale"`
	MaxScale     float32 `mapstructure:"max_scale"`
	HistoryDepth int     `mapstructure:"history_depth"`
}

// CatalogConfig selects where sample images come from. Dir wins over Images.
type CatalogConfig struct {
	Dir    string
	Images []string
}

// BridgeConfig holds renderer bridge settings.
type BridgeConfig struct {
	Addr      string
	Advertise bool
	Instance  string
	// AllowedOrigins are browser origins accepted besides the host's own.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from file and env. Env var overrides use prefix COLLAGEBOARD_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("editor.min_scale", 0.2)
	v.SetDefault("editor.max_scale", 5.0)
	v.SetDefault("editor.history_depth", 0)
	v.SetDefault("catalog.dir", "")
	v.SetDefault("catalog.images", []string{"sample_1", "sample_2", "sample_3", "sample_4", "sample_5"})
	v.SetDefault("bridge.addr", ":8888")
	v.SetDefault("bridge.advertise", false)
	v.SetDefault("bridge.instance", "")
	v.SetDefault("bridge.allowed_origins", []string{})

	v.SetConfigType("toml")

	cfgPath := os.Getenv("COLLAGEBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "collageboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COLLAGEBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Editor.MinScale <= 0 || c.Editor.MaxScale < c.Editor.MinScale {
		return Config{}, fmt.Errorf("invalid scale range [%g, %g]", c.Editor.MinScale, c.Editor.MaxScale)
	}
	if c.Editor.HistoryDepth < 0 {
		return Config{}, fmt.Errorf("invalid history depth %d", c.Editor.HistoryDepth)
	}
	return c, nil
}

// Options converts the editor section into state engine options.
func (c EditorConfig) Options() state.Options {
	return state.Options{MinScale: c.MinScale, MaxScale: c.MaxScale, HistoryDepth: c.HistoryDepth}
}
