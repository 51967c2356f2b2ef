package config

type TelegramConfig struct {
	ApiToken     string `yaml:"token"`
	NotifyChatID int64  `yaml:"notify-chat-id"`
}

func (t *TelegramConfig) Token() string {
	return t.ApiToken
}

// ChatID is where cmd/submit mirrors its notifications. Zero disables it.
func (t *TelegramConfig) ChatID() int64 {
	return t.NotifyChatID
}
