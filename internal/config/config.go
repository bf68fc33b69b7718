package config

import (
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	HTTP     HTTPConfig     `yaml:"http"`
	Alerting AlertingConfig `yaml:"alerting"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type HTTPConfig struct {
	Port            int `yaml:"port"`
	ShutdownSeconds int `yaml:"shutdown_seconds"`
}

type AlertingConfig struct {
	// DelayRisk alerts fire when a prediction's delay probability exceeds
	// this value.
	ProbabilityThreshold float64 `yaml:"probability_threshold"`
}

func (h HTTPConfig) ShutdownTimeout() time.Duration {
	if h.ShutdownSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(h.ShutdownSeconds) * time.Second
}

func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Database.Host == "" || cfg.RabbitMQ.Host == "" {
		return nil, fmt.Errorf("invalid config %s: database and rabbitmq hosts are required", path)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{Port: 5432},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/"},
		HTTP:     HTTPConfig{Port: 3000, ShutdownSeconds: 5},
		Alerting: AlertingConfig{ProbabilityThreshold: 0.7},
	}
}

func FindConfig() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fs.ErrNotExist
}
