package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/cadastro/internal/validate"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	Wizard   WizardConfig
	History  HistoryConfig
	Picker   PickerConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds logger settings. The TUI owns the terminal, so logs go to
// a file.
type LogConfig struct {
	Level  string
	Format string
	Path   string
}

// WizardConfig holds validation settings.
type WizardConfig struct {
	PhonePolicy string `mapstructure:"phone_policy"`
}

// HistoryConfig controls the notification history.
type HistoryConfig struct {
	Enabled bool
	Limit   int
}

// PickerConfig controls the photo file picker.
type PickerConfig struct {
	StartDir     string   `mapstructure:"start_dir"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// PhonePolicy parses Wizard.PhonePolicy.
func (c Config) PhonePolicy() (validate.PhonePolicy, error) {
	return validate.ParsePhonePolicy(c.Wizard.PhonePolicy)
}

// DefaultPath is the config file used when neither --config nor
// CADASTRO_CONFIG is given.
func DefaultPath() string {
	return filepath.Join(configHome(), "cadastro", "config.toml")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
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

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share")
}

// Load reads configuration from file and env. An explicit path wins over
// CADASTRO_CONFIG, which wins over the default location. Env var overrides
// use prefix CADASTRO_. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(dataHome(), "cadastro", "cadastro.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.path", filepath.Join(stateHome(), "cadastro", "cadastro.log"))
	v.SetDefault("wizard.phone_policy", string(validate.PhoneMobile))
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.limit", 50)
	v.SetDefault("picker.start_dir", os.Getenv("HOME"))
	v.SetDefault("picker.allowed_types", []string{".jpg", ".jpeg", ".png", ".heic", ".webp"})

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("CADASTRO_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(configHome(), "cadastro"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CADASTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file if present
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !(explicit && errors.Is(err, fs.ErrNotExist)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := c.PhonePolicy(); err != nil {
		return Config{}, fmt.Errorf("wizard.phone_policy: %w", err)
	}
	return c, nil
}

// Save writes the provided config to path, creating the directory if
// needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("log.path", cfg.Log.Path)
	v.Set("wizard.phone_policy", cfg.Wizard.PhonePolicy)
	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.limit", cfg.History.Limit)
	v.Set("picker.start_dir", cfg.Picker.StartDir)
	v.Set("picker.allowed_types", cfg.Picker.AllowedTypes)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
