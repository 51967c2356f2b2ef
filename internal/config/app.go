package config

import "time"

type AppConfig struct {
	Name                string `yaml:"name"`
	ShutdownTimeoutSecs int64  `yaml:"shutdown-timeout-seconds"`
}

func (s *AppConfig) ServiceName() string {
	return s.Name
}

func (s *AppConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSecs) * time.Second
}
