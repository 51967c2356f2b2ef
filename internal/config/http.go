package config

import "time"

type HTTPConfig struct {
	Address         string `yaml:"address"`
	ServerBaseURL   string `yaml:"base-url"`
	ReadTimeoutSecs int64  `yaml:"read-timeout-seconds"`
}

// ListenAddress is where cmd/server binds.
func (s *HTTPConfig) ListenAddress() string {
	return s.Address
}

// BaseURL is where clients reach the server.
func (s *HTTPConfig) BaseURL() string {
	return s.ServerBaseURL
}

func (s *HTTPConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSecs) * time.Second
}
