package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/prompter/internal/domain"
	"github.com/spf13/viper"
)

// Theme names accepted in ui.theme
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds all application configuration
type Config struct {
	Host    HostConfig    `mapstructure:"host"`
	UI      UIConfig      `mapstructure:"ui"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// HostConfig describes the simulated host session
type HostConfig struct {
	SampleRate     int     `mapstructure:"sample_rate"`
	BlockSize      int     `mapstructure:"block_size"`
	Tempo          float64 `mapstructure:"tempo"`          // quarter notes per minute
	TimeSignature  int     `mapstructure:"time_signature"` // beats per bar
	InputChannels  int     `mapstructure:"input_channels"`
	OutputChannels int     `mapstructure:"output_channels"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	TransportHz int     `mapstructure:"transport_hz"` // transport read and line remap rate
	FrameHz     int     `mapstructure:"frame_hz"`     // scroll ease rate
	Theme       string  `mapstructure:"theme"`
	ManualStep  float64 `mapstructure:"manual_step"` // manual scroll change per key press
	Editor      string  `mapstructure:"editor"`      // external editor, empty for $EDITOR
}

// StoreConfig holds session persistence configuration
type StoreConfig struct {
	Path    string `mapstructure:"path"` // empty = memory only
	Session string `mapstructure:"session"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Host: HostConfig{
			SampleRate:     48000,
			BlockSize:      512,
			Tempo:          120,
			TimeSignature:  4,
			InputChannels:  2,
			OutputChannels: 2,
		},
		UI: UIConfig{
			TransportHz: 30,
			FrameHz:     60,
			Theme:       ThemeDark,
			ManualStep:  0.05,
		},
		Store: StoreConfig{
			Path:    defaultDataPath(),
			Session: "default",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "prompter.log"),
			Level: "INFO",
		},
	}
}

// envKeyReplacer maps nested keys to environment names (ui.theme → UI_THEME)
var envKeyReplacer = strings.NewReplacer(".", "_")

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "prompter")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "prompter")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "prompter")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "prompter")
	}
}

// setDefaults registers defaults with viper so env overrides work for keys
// absent from the config file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("host.sample_rate", cfg.Host.SampleRate)
	v.SetDefault("host.block_size", cfg.Host.BlockSize)
	v.SetDefault("host.tempo", cfg.Host.Tempo)
	v.SetDefault("host.time_signature", cfg.Host.TimeSignature)
	v.SetDefault("host.input_channels", cfg.Host.InputChannels)
	v.SetDefault("host.output_channels", cfg.Host.OutputChannels)

	v.SetDefault("ui.transport_hz", cfg.UI.TransportHz)
	v.SetDefault("ui.frame_hz", cfg.UI.FrameHz)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("ui.manual_step", cfg.UI.ManualStep)
	v.SetDefault("ui.editor", cfg.UI.Editor)

	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.session", cfg.Store.Session)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.New(), defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration using v, searching dirs in order
func LoadConfigFrom(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides, e.g. PROMPTER_UI_THEME
	v.SetEnvPrefix("PROMPTER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(viper.New(), cfg, defaultConfigPath())
}

// SaveConfigTo writes cfg to config.yaml in dir
func SaveConfigTo(v *viper.Viper, cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("host.sample_rate", cfg.Host.SampleRate)
	v.Set("host.block_size", cfg.Host.BlockSize)
	v.Set("host.tempo", cfg.Host.Tempo)
	v.Set("host.time_signature", cfg.Host.TimeSignature)
	v.Set("host.input_channels", cfg.Host.InputChannels)
	v.Set("host.output_channels", cfg.Host.OutputChannels)

	v.Set("ui.transport_hz", cfg.UI.TransportHz)
	v.Set("ui.frame_hz", cfg.UI.FrameHz)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.manual_step", cfg.UI.ManualStep)
	v.Set("ui.editor", cfg.UI.Editor)

	v.Set("store.path", cfg.Store.Path)
	v.Set("store.session", cfg.Store.Session)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks ranges that would otherwise stall the tickers or the host
func (c *Config) Validate() error {
	switch {
	case c.Host.SampleRate <= 0:
		return fmt.Errorf("host.sample_rate must be positive: %w", domain.ErrInvalidConfig)
	case c.Host.BlockSize <= 0:
		return fmt.Errorf("host.block_size must be positive: %w", domain.ErrInvalidConfig)
	case c.Host.Tempo <= 0:
		return fmt.Errorf("host.tempo must be positive: %w", domain.ErrInvalidConfig)
	case c.Host.OutputChannels <= 0 || c.Host.InputChannels < 0:
		return fmt.Errorf("host channel counts out of range: %w", domain.ErrInvalidConfig)
	case c.UI.TransportHz <= 0 || c.UI.FrameHz <= 0:
		return fmt.Errorf("ui tick rates must be positive: %w", domain.ErrInvalidConfig)
	case c.UI.Theme != ThemeDark && c.UI.Theme != ThemeLight:
		return fmt.Errorf("ui.theme %q: %w", c.UI.Theme, domain.ErrInvalidConfig)
	case c.UI.ManualStep <= 0 || c.UI.ManualStep > 1:
		return fmt.Errorf("ui.manual_step must be in (0, 1]: %w", domain.ErrInvalidConfig)
	case c.Store.Session == "":
		return fmt.Errorf("store.session must not be empty: %w", domain.ErrInvalidConfig)
	}
	return nil
}
