package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// URL, when set, wins over the individual fields.
	URL string `yaml:"url"`
}

type RabbitMQ struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// Policy holds the two accounting decisions the source revisions
// disagreed on. Both default to the safe choice.
type Policy struct {
	// ResetAmountOnClear: clearing a cell to empty also drops its
	// accumulated amount (the row is deleted).
	ResetAmountOnClear bool `yaml:"reset_amount_on_clear"`
	// ClearLinesOnFinish: finishing a batch archives the live lines so
	// a repeated finish can never double-count.
	ClearLinesOnFinish bool `yaml:"clear_lines_on_finish"`
}

type App struct {
	Port     int      `yaml:"port"`
	Database Database `yaml:"database"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
	Policy   Policy   `yaml:"policy"`
}

func Default() App {
	return App{
		Port: 3000,
		Database: Database{
			Host: "localhost",
			Port: 5432,
		},
		RabbitMQ: RabbitMQ{
			Exchange: "shiftboard_events",
		},
		Policy: Policy{
			ResetAmountOnClear: true,
			ClearLinesOnFinish: true,
		},
	}
}

// Load reads the YAML config file if it exists and applies environment
// overrides on top. A missing file is not an error; defaults apply.
func Load(path string) (App, error) {
	a := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &a); err != nil {
			return App{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// defaults + env only
	default:
		return App{}, fmt.Errorf("read config %s: %w", path, err)
	}

	a.Port = readInt("PORT", a.Port)
	a.Database.URL = readString("DATABASE_URL", a.Database.URL)
	a.Database.Host = readString("DB_HOST", a.Database.Host)
	a.Database.Port = readInt("DB_PORT", a.Database.Port)
	a.Database.User = readString("DB_USER", a.Database.User)
	a.Database.Password = readString("DB_PASSWORD", a.Database.Password)
	a.Database.Database = readString("DB_NAME", a.Database.Database)
	a.RabbitMQ.URL = readString("RABBITMQ_URL", a.RabbitMQ.URL)
	a.RabbitMQ.Exchange = readString("RABBITMQ_EXCHANGE", a.RabbitMQ.Exchange)
	a.Policy.ResetAmountOnClear = readBool("RESET_AMOUNT_ON_CLEAR", a.Policy.ResetAmountOnClear)
	a.Policy.ClearLinesOnFinish = readBool("CLEAR_LINES_ON_FINISH", a.Policy.ClearLinesOnFinish)

	if a.Database.URL == "" && (a.Database.User == "" || a.Database.Database == "") {
		return App{}, errors.New("invalid config: set database url or user+database")
	}
	return a, nil
}

// DSN resolves the Postgres connection string.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

func readString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
