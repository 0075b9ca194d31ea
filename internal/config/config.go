// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "keydecoder"
	ConfigType    = "yaml"
	DefaultConfig = `# Straight-key decoder configuration

# Input source
input: "replay"         # "replay" plays a keying script, "audio" reads a sound-card key
script: ""              # Path to the keying script (replay input)

# Timing thresholds in ticks (polled at 100Hz, 1 tick = 10ms)
dash_ticks: 50          # Hold longer than this for a dash (0.5s)
letter_gap_ticks: 100   # Release this long ends the letter (1s)
word_gap_ticks: 200     # Release this long ends the word (2s)

# Audio key interface (audio input)
device_index: -1        # -1 for default capture device
sample_rate: 48000      # Audio sample rate in Hz
buffer_size: 512        # Samples per envelope block
threshold: 0.4          # Key-down level (0.0-1.0), envelope must exceed this
hysteresis: 5           # Consecutive blocks required to confirm a key edge

# Output
debug: false            # Enable debug output
`
)

// Settings holds all application configuration
type Settings struct {
	// Input source
	Input  string `mapstructure:"input"`
	Script string `mapstructure:"script"`

	// Timing thresholds (ticks at 100Hz)
	DashTicks      int `mapstructure:"dash_ticks"`
	LetterGapTicks int `mapstructure:"letter_gap_ticks"`
	WordGapTicks   int `mapstructure:"word_gap_ticks"`

	// Audio key interface
	DeviceIndex int     `mapstructure:"device_index"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	BufferSize  int     `mapstructure:"buffer_size"`
	Threshold   float64 `mapstructure:"threshold"`
	Hysteresis  int     `mapstructure:"hysteresis"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/keydecoder/
func Init() error {
	// Set defaults
	viper.SetDefault("input", "replay")
	viper.SetDefault("script", "")
	viper.SetDefault("dash_ticks", 50)
	viper.SetDefault("letter_gap_ticks", 100)
	viper.SetDefault("word_gap_ticks", 200)
	viper.SetDefault("device_index", -1)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("buffer_size", 512)
	viper.SetDefault("threshold", 0.4)
	viper.SetDefault("hysteresis", 5)
	viper.SetDefault("debug", false)

	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// If no config file exists, create the default in the XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Input source
	switch s.Input {
	case "replay", "audio":
	default:
		errs = append(errs, fmt.Errorf("input must be \"replay\" or \"audio\", got %q", s.Input))
	}

	// Timing thresholds must be positive and strictly ordered
	if s.DashTicks < 1 {
		errs = append(errs, fmt.Errorf("dash_ticks must be positive, got %d", s.DashTicks))
	}
	if s.LetterGapTicks <= s.DashTicks {
		errs = append(errs, fmt.Errorf("letter_gap_ticks must be greater than dash_ticks (%d), got %d",
			s.DashTicks, s.LetterGapTicks))
	}
	if s.WordGapTicks <= s.LetterGapTicks {
		errs = append(errs, fmt.Errorf("word_gap_ticks must be greater than letter_gap_ticks (%d), got %d",
			s.LetterGapTicks, s.WordGapTicks))
	}

	// Audio key interface
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %v", s.SampleRate))
	}
	if s.BufferSize < 64 || s.BufferSize > 8192 {
		errs = append(errs, fmt.Errorf("buffer_size must be between 64 and 8192, got %d", s.BufferSize))
	}
	if s.BufferSize&(s.BufferSize-1) != 0 {
		errs = append(errs, fmt.Errorf("buffer_size should be a power of 2, got %d", s.BufferSize))
	}
	if s.Threshold < 0.0 || s.Threshold > 1.0 {
		errs = append(errs, fmt.Errorf("threshold must be between 0.0 and 1.0, got %v", s.Threshold))
	}
	if s.Hysteresis < 1 || s.Hysteresis > 50 {
		errs = append(errs, fmt.Errorf("hysteresis must be between 1 and 50, got %d", s.Hysteresis))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
