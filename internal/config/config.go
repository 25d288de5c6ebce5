// Package config carrega a configuração do servidor a partir de variáveis de ambiente.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config reúne tudo que cmd/server precisa para subir.
type Config struct {
	Addr        string        `env:"DICESOCCER_ADDR" envDefault:":3000"`
	GracePeriod time.Duration `env:"DICESOCCER_GRACE_PERIOD" envDefault:"5s"`
	MaxPhases   int           `env:"DICESOCCER_MAX_PHASES" envDefault:"1"`
	DBPath      string        `env:"DICESOCCER_DB_PATH" envDefault:"dicesoccer.db"`
	ServiceName string        `env:"DICESOCCER_SERVICE_NAME" envDefault:"dicesoccer"`

	// Opcionais: vazios desligam a integração.
	ConsulAddr string `env:"CONSUL_HTTP_ADDR"`
	NATSURL    string `env:"NATS_URL"`

	AdvertisedHostname string `env:"SERVICE_ADVERTISED_HOSTNAME"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load lê o ambiente e valida os valores.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.GracePeriod <= 0 {
		return fmt.Errorf("DICESOCCER_GRACE_PERIOD must be positive, got %s", c.GracePeriod)
	}
	if c.MaxPhases < 1 {
		return fmt.Errorf("DICESOCCER_MAX_PHASES must be at least 1, got %d", c.MaxPhases)
	}
	if _, err := c.Port(); err != nil {
		return err
	}
	return nil
}

// Port extrai a porta de Addr para o registro no Consul.
func (c Config) Port() (int, error) {
	_, portStr, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return 0, fmt.Errorf("invalid DICESOCCER_ADDR %q: %w", c.Addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid DICESOCCER_ADDR port %q: %w", portStr, err)
	}
	return port, nil
}
