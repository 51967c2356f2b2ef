package config

type JaegerConfig struct {
	AgentHostPort string  `yaml:"agent"`
	SamplerParam  float64 `yaml:"sampler-param"`
}

func (j *JaegerConfig) LocalAgentHostPort() string {
	return j.AgentHostPort
}

func (j *JaegerConfig) SamplingRate() float64 {
	return j.SamplerParam
}
