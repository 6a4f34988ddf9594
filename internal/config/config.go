// Package config содержит логику чтения конфигурации сервиса учёта расходов.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultRunAddress      = "localhost:8080"
	defaultLocale          = "fr"
	defaultModalWidth      = 800
	defaultBillsAPITimeout = 5 * time.Second
)

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS" yaml:"run_address"`
	DatabaseURI     string        `env:"DATABASE_URI" yaml:"database_uri"`
	BillsAPIAddress string        `env:"BILLS_API_ADDRESS" yaml:"bills_api_address"`
	BillsAPITimeout time.Duration `env:"BILLS_API_TIMEOUT" yaml:"bills_api_timeout"`
	SessionSecret   string        `env:"SESSION_SECRET" yaml:"session_secret"`
	Locale          string        `env:"LOCALE" yaml:"locale"`
	ModalWidth      int           `env:"MODAL_WIDTH" yaml:"modal_width"`
	ConfigFile      string        `env:"CONFIG" yaml:"-"`
}

// Parse считывает конфигурацию. Приоритет: переменные окружения, затем флаги,
// затем YAML-файл из -c или CONFIG, затем значения по умолчанию. Файл .env загружается в окружение первым.
func Parse() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	envCfg := Config{}
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flagCfg := Config{}
	flag.StringVar(&flagCfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&flagCfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&flagCfg.BillsAPIAddress, "r", "", "bills API address")
	flag.StringVar(&flagCfg.SessionSecret, "s", "", "session token secret")
	flag.StringVar(&flagCfg.Locale, "l", defaultLocale, "page locale")
	flag.StringVar(&flagCfg.ConfigFile, "c", "", "path to YAML config file")

	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg := &Config{
		RunAddress:      defaultRunAddress,
		Locale:          defaultLocale,
		ModalWidth:      defaultModalWidth,
		BillsAPITimeout: defaultBillsAPITimeout,
	}

	cfg.ConfigFile = pick(envCfg.ConfigFile, flagCfg.ConfigFile, setFlags["c"])
	if cfg.ConfigFile != "" {
		fileCfg, err := readFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.merge(fileCfg)
	}

	flagSet := Config{}
	if setFlags["a"] {
		flagSet.RunAddress = flagCfg.RunAddress
	}
	if setFlags["d"] {
		flagSet.DatabaseURI = flagCfg.DatabaseURI
	}
	if setFlags["r"] {
		flagSet.BillsAPIAddress = flagCfg.BillsAPIAddress
	}
	if setFlags["s"] {
		flagSet.SessionSecret = flagCfg.SessionSecret
	}
	if setFlags["l"] {
		flagSet.Locale = flagCfg.Locale
	}
	cfg.merge(flagSet)

	envCfg.ConfigFile = ""
	cfg.merge(envCfg)

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}

	return cfg, nil
}

// merge переносит в cfg непустые значения other.
func (cfg *Config) merge(other Config) {
	if other.RunAddress != "" {
		cfg.RunAddress = other.RunAddress
	}
	if other.DatabaseURI != "" {
		cfg.DatabaseURI = other.DatabaseURI
	}
	if other.BillsAPIAddress != "" {
		cfg.BillsAPIAddress = other.BillsAPIAddress
	}
	if other.BillsAPITimeout > 0 {
		cfg.BillsAPITimeout = other.BillsAPITimeout
	}
	if other.SessionSecret != "" {
		cfg.SessionSecret = other.SessionSecret
	}
	if other.Locale != "" {
		cfg.Locale = other.Locale
	}
	if other.ModalWidth > 0 {
		cfg.ModalWidth = other.ModalWidth
	}
}

func pick(envValue, flagValue string, flagSet bool) string {
	if envValue != "" {
		return envValue
	}
	if flagSet {
		return flagValue
	}
	return ""
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
