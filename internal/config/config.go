package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds connection, query and output settings for a dump.
type Config struct {
	Database struct {
		Host           string `yaml:"host"`
		Port           string `yaml:"port"`
		User           string `yaml:"user"`
		Password       string `yaml:"password"`
		DBName         string `yaml:"dbname"`
		SSLMode        string `yaml:"sslmode"`
		ConnectTimeout int    `yaml:"connectTimeout"`
	} `yaml:"database"`

	Query struct {
		Table       string `yaml:"table"`
		DataColumn  string `yaml:"dataColumn"`
		NameColumn  string `yaml:"nameColumn"`
		AdminColumn string `yaml:"adminColumn"`
	} `yaml:"query"`

	Output struct {
		Format string `yaml:"format"`
	} `yaml:"output"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns a Config with every optional field set.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads the configuration from the specified YAML file
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Query.Table == "" {
		cfg.Query.Table = "v8users"
	}
	if cfg.Query.DataColumn == "" {
		cfg.Query.DataColumn = "data"
	}
	if cfg.Query.NameColumn == "" {
		cfg.Query.NameColumn = "name"
	}
	if cfg.Query.AdminColumn == "" {
		cfg.Query.AdminColumn = "admrole"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks the fields a dump cannot run without. formats lists the
// accepted output format names.
func (c *Config) Validate(formats []string) error {
	if strings.TrimSpace(c.Database.User) == "" {
		return fmt.Errorf("database user is required")
	}
	if strings.TrimSpace(c.Database.DBName) == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.ConnectTimeout < 0 {
		return fmt.Errorf("connect timeout must not be negative, got %d", c.Database.ConnectTimeout)
	}
	for _, f := range formats {
		if f == c.Output.Format {
			return nil
		}
	}
	sorted := append([]string(nil), formats...)
	sort.Strings(sorted)
	return fmt.Errorf("unsupported output format %q (want one of %s)", c.Output.Format, strings.Join(sorted, ", "))
}

// DSN renders the database section as a libpq key/value connection string.
func (c *Config) DSN() string {
	db := c.Database
	pairs := [][2]string{
		{"host", db.Host},
		{"port", db.Port},
		{"user", db.User},
		{"password", db.Password},
		{"dbname", db.DBName},
		{"sslmode", db.SSLMode},
	}
	if db.ConnectTimeout > 0 {
		pairs = append(pairs, [2]string{"connect_timeout", fmt.Sprint(db.ConnectTimeout)})
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		parts = append(parts, p[0]+"="+quoteValue(p[1]))
	}
	return strings.Join(parts, " ")
}

func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
