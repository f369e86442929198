package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultUsername = "jxpeng98"
	DefaultHost     = "github.com"
	DefaultAddr     = ":8080"
	DefaultTimeout  = 30 * time.Second
)

type Config struct {
	Username string        `yaml:"username"`
	Host     string        `yaml:"host"`
	Timeout  time.Duration `yaml:"timeout"`

	// Token is only read from the environment.
	Token string `yaml:"-"`

	Homepages bool   `yaml:"homepages"`
	Log       Log    `yaml:"log"`
	Server    Server `yaml:"server"`
}

type Log struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
	File   string `yaml:"file"`
}

type Server struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

func Default() *Config {
	return &Config{
		Username: DefaultUsername,
		Host:     DefaultHost,
		Timeout:  DefaultTimeout,
		Log: Log{
			Format: "json",
			Level:  "info",
		},
		Server: Server{
			Addr:         DefaultAddr,
			AllowOrigins: []string{"*"},
		},
	}
}

// Load reads the YAML file at path, if any, over the defaults, then applies
// environment variables. A .env file in the working directory is loaded
// without overriding variables already set.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("GITHUB_PAT"); v != "" {
		c.Token = v
	}
	if v := getenv("PINNED_USERNAME"); v != "" {
		c.Username = v
	}
	if v := getenv("GH_HOST"); v != "" {
		c.Host = v
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %s", c.Timeout)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}

	return nil
}
