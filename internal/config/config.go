package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Catalog sources
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

// Order sinks
const (
	SinkNone     = "none"
	SinkRabbitMQ = "rabbitmq"
)

// Config holds all configuration for the menu widget services
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Menu     MenuConfig     `yaml:"menu"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// MenuConfig holds the widget behaviour knobs
type MenuConfig struct {
	CatalogSource     string        `yaml:"catalog_source"`
	OrderSink         string        `yaml:"order_sink"`
	CurrencySymbol    string        `yaml:"currency_symbol"`
	CarouselInterval  time.Duration `yaml:"carousel_interval"`
	ConfirmationDelay time.Duration `yaml:"confirmation_delay"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when a key is absent from the file
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "menu",
			Password: "menu",
			Database: "menu",
		},
		RabbitMQ: RabbitMQConfig{
			Host:     "localhost",
			Port:     5672,
			User:     "guest",
			Password: "guest",
		},
		Menu: MenuConfig{
			CatalogSource:     CatalogStatic,
			OrderSink:         SinkNone,
			CurrencySymbol:    "₦",
			CarouselInterval:  5 * time.Second,
			ConfirmationDelay: 3 * time.Second,
		},
		HTTP: HTTPConfig{
			Port:            3000,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load reads configuration from a YAML file, applies environment overrides and validates the result
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// applyEnv overrides selected values from the environment
func (c *Config) applyEnv() error {
	port, err := atoienv("MENU_HTTP_PORT", c.HTTP.Port)
	if err != nil {
		return err
	}
	c.HTTP.Port = port
	c.Menu.CatalogSource = getenv("MENU_CATALOG_SOURCE", c.Menu.CatalogSource)
	c.Menu.OrderSink = getenv("MENU_ORDER_SINK", c.Menu.OrderSink)
	c.Menu.CurrencySymbol = getenv("MENU_CURRENCY_SYMBOL", c.Menu.CurrencySymbol)
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Menu.CatalogSource {
	case CatalogStatic, CatalogPostgres:
	default:
		return fmt.Errorf("menu.catalog_source must be one of: %s, %s", CatalogStatic, CatalogPostgres)
	}

	switch c.Menu.OrderSink {
	case SinkNone, SinkRabbitMQ:
	default:
		return fmt.Errorf("menu.order_sink must be one of: %s, %s", SinkNone, SinkRabbitMQ)
	}

	if c.Menu.CarouselInterval <= 0 {
		return fmt.Errorf("menu.carousel_interval must be positive")
	}
	if c.Menu.ConfirmationDelay <= 0 {
		return fmt.Errorf("menu.confirmation_delay must be positive")
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535")
	}
	return nil
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) (int, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", key, v, err)
	}
	return n, nil
}
