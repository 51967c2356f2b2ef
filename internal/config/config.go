package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile   = "data/config.yaml"
	configFileEnv = "BUDGET_CONFIG"
)

type config struct {
	App       AppConfig       `yaml:"app"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Memcached MemcachedConfig `yaml:"memcached"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Jaeger    JaegerConfig    `yaml:"jaeger"`
}

type Service struct {
	config config
}

// New reads the file named by BUDGET_CONFIG, falling back to DefaultFile.
func New() (*Service, error) {
	path := os.Getenv(configFileEnv)
	if path == "" {
		path = DefaultFile
	}
	return FromFile(path)
}

func FromFile(path string) (*Service, error) {
	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	return Parse(rawYAML)
}

func Parse(rawYAML []byte) (*Service, error) {
	s := &Service{config: defaults()}

	err := yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	return s, nil
}

func defaults() config {
	return config{
		App: AppConfig{
			Name:                "budget-tracker",
			ShutdownTimeoutSecs: 5,
		},
		HTTP: HTTPConfig{
			Address:         ":8080",
			ServerBaseURL:   "http://127.0.0.1:8080",
			ReadTimeoutSecs: 10,
		},
		GRPC: GRPCConfig{
			Port: 9090,
		},
		Postgres: PostgresConfig{
			SSLModeName: "disable",
		},
		Kafka: KafkaConfig{
			Consumer:    "budget-reporter",
			EventsTopic: "transactions.events",
		},
	}
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) HTTP() *HTTPConfig {
	return &s.config.HTTP
}

func (s *Service) GRPC() *GRPCConfig {
	return &s.config.GRPC
}

func (s *Service) Postgres() *PostgresConfig {
	return &s.config.Postgres
}

func (s *Service) Memcached() *MemcachedConfig {
	return &s.config.Memcached
}

func (s *Service) Kafka() *KafkaConfig {
	return &s.config.Kafka
}

func (s *Service) Telegram() *TelegramConfig {
	return &s.config.Telegram
}

func (s *Service) Jaeger() *JaegerConfig {
	return &s.config.Jaeger
}
