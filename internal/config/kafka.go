package config

type KafkaConfig struct {
	BrokerList  []string `yaml:"brokers"`
	Consumer    string   `yaml:"consumer-group"`
	EventsTopic string   `yaml:"events-topic"`
}

func (s *KafkaConfig) Brokers() []string {
	return s.BrokerList
}

func (s *KafkaConfig) ConsumerGroup() string {
	return s.Consumer
}

func (s *KafkaConfig) TransactionsTopic() string {
	return s.EventsTopic
}

func (s *KafkaConfig) Enabled() bool {
	return len(s.BrokerList) > 0
}
