package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/ukaji3/certalert-go/pkg/certalert/report"
)

// Default values for the settings file.
const (
	DefaultConfigFile = "certalert.toml"
	DefaultEnvFile    = ".env"
	DefaultInputFile  = "dados.xlsx"
)

// Config struct to match the structure of the certalert.toml file.
type Config struct {
	Settings Settings       `toml:"settings"`
	Columns  ColumnsConfig  `toml:"columns"`
	Telegram TelegramConfig `toml:"telegram"`
}

// Settings holds the run parameters.
type Settings struct {
	// File is the spreadsheet to read.
	File string `toml:"file"`
	// Sheet is the sheet name; empty selects the first sheet.
	Sheet string `toml:"sheet"`
	// WindowDays is the inclusive upper bound of the alert window.
	WindowDays int `toml:"window_days"`
}

// ColumnsConfig names the spreadsheet columns.
type ColumnsConfig struct {
	Code    string `toml:"code"`
	Company string `toml:"company"`
	Days    string `toml:"days"`
	Expiry  string `toml:"expiry"`
}

// Report converts the column names for the report builder.
func (c ColumnsConfig) Report() report.Columns {
	return report.Columns{
		Code:    c.Code,
		Company: c.Company,
		Days:    c.Days,
		Expiry:  c.Expiry,
	}
}

// TelegramConfig holds non-secret delivery settings.
type TelegramConfig struct {
	// APIURL overrides the Bot API base URL.
	APIURL string `toml:"api_url"`
}

// Secrets holds the credentials read from the environment.
type Secrets struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID string `envconfig:"TELEGRAM_CHAT_ID" required:"true"`
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	def := report.DefaultColumns()
	return &Config{
		Settings: Settings{
			File:       DefaultInputFile,
			WindowDays: report.DefaultWindowDays,
		},
		Columns: ColumnsConfig{
			Code:    def.Code,
			Company: def.Company,
			Days:    def.Days,
			Expiry:  def.Expiry,
		},
	}
}

// Load reads the settings file at path over the defaults. When optional is
// true a missing file is not an error and the defaults are returned.
func Load(path string, optional bool) (*Config, error) {
	cfg := Defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks structural constraints on the configuration.
func (c *Config) Validate() error {
	if c.Settings.File == "" {
		return errors.New("settings.file must not be empty")
	}
	if c.Settings.WindowDays < 1 {
		return fmt.Errorf("settings.window_days %d must be at least 1", c.Settings.WindowDays)
	}
	columns := []struct{ key, name string }{
		{"code", c.Columns.Code},
		{"company", c.Columns.Company},
		{"days", c.Columns.Days},
		{"expiry", c.Columns.Expiry},
	}
	for _, col := range columns {
		if col.name == "" {
			return fmt.Errorf("columns.%s must not be empty", col.key)
		}
	}
	return nil
}

// LoadSecrets loads envFile when it exists, without overriding variables
// already set, then reads the Telegram credentials from the environment.
func LoadSecrets(envFile string) (*Secrets, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %q: %w", envFile, err)
		}
	}

	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if s.Token == "" {
		return nil, errors.New("config: TELEGRAM_TOKEN is empty")
	}
	if s.ChatID == "" {
		return nil, errors.New("config: TELEGRAM_CHAT_ID is empty")
	}
	return &s, nil
}
