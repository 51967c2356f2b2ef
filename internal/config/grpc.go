package config

type GRPCConfig struct {
	Port int `yaml:"port"`
}

func (s *GRPCConfig) HealthPort() int {
	return s.Port
}
