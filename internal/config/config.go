package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EngineLibreOffice = "libreoffice"
	EngineText        = "text"
)

type Config struct {
	Server     ServerConfig
	Conversion ConversionConfig
}

type ServerConfig struct {
	Host            string        `yaml:"host" env:"HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"PORT" env-default:"8000" validate:"required,numeric"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"60s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"300s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type ConversionConfig struct {
	Engine      string        `yaml:"engine" env:"CONVERSION_ENGINE" env-default:"libreoffice" validate:"oneof=libreoffice text"`
	SofficePath string        `yaml:"soffice_path" env:"SOFFICE_PATH"`
	ScratchDir  string        `yaml:"scratch_dir" env:"SCRATCH_DIR"`
	StaleAfter  time.Duration `yaml:"stale_after" env:"SCRATCH_STALE_AFTER" env-default:"1h"`
}

func MustLoad() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

func (c *Config) ScratchRoot() string {
	if c.Conversion.ScratchDir != "" {
		return c.Conversion.ScratchDir
	}
	return os.TempDir()
}
