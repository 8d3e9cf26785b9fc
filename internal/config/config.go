package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	// Mode selects the surface: "http" (default) or "stdio" for the local
	// MCP assistant surface.
	Mode   string       `yaml:"mode"`
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Auth   AuthConfig   `yaml:"auth"`
	Log    LogConfig    `yaml:"log"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// Secret signs bearer tokens. Must be set outside local development.
	Secret string `yaml:"secret"`
	// TokenTTLHours bounds token validity; defaults to a week.
	TokenTTLHours int `yaml:"token_ttl_hours"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MCPConfig struct {
	// UserID binds the stdio MCP surface to one account.
	UserID string `yaml:"user_id"`
}

// TokenTTL returns the token lifetime as a duration.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Mode: "http",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "applytrack.db",
		},
		Auth: AuthConfig{
			Secret:        "super-secret-key",
			TokenTTLHours: 24 * 7,
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("APPLYTRACK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("APPLYTRACK_MODE"); mode != "" {
		cfg.Mode = mode
	}
	if host := os.Getenv("APPLYTRACK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("APPLYTRACK_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid APPLYTRACK_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("APPLYTRACK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if secret := os.Getenv("APPLYTRACK_JWT_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	if ttlStr := os.Getenv("APPLYTRACK_TOKEN_TTL_HOURS"); ttlStr != "" {
		ttl, err := strconv.Atoi(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid APPLYTRACK_TOKEN_TTL_HOURS: %w", err)
		}
		cfg.Auth.TokenTTLHours = ttl
	}
	if level := os.Getenv("APPLYTRACK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if mcpUser := os.Getenv("APPLYTRACK_MCP_USER"); mcpUser != "" {
		cfg.MCP.UserID = mcpUser
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
