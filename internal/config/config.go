package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort     string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis          Redis         `yaml:"redis"`
	MatchTTL       time.Duration `yaml:"match-ttl" env:"MATCH_TTL" env-default:"24h"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://127.0.0.1:5173"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
