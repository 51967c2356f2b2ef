package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OnParse_ShouldKeepDefaultsForMissingSections(t *testing.T) {
	cfg, err := Parse([]byte(`
postgres:
  host: db.local
  db: budget
kafka:
  brokers: ["k1:9092", "k2:9092"]
`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP().ListenAddress())
	assert.Equal(t, 10*time.Second, cfg.HTTP().ReadTimeout())
	assert.Equal(t, "budget-tracker", cfg.App().ServiceName())
	assert.True(t, cfg.Postgres().Enabled())
	assert.Equal(t, "disable", cfg.Postgres().SSLMode())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka().Brokers())
	assert.Equal(t, "transactions.events", cfg.Kafka().TransactionsTopic())
	assert.False(t, cfg.Memcached().Enabled())
}

func Test_OnParse_ShouldFailOnBrokenYAML(t *testing.T) {
	_, err := Parse([]byte("http: [unclosed"))
	assert.Error(t, err)
}

func Test_OnFromFile_ShouldReadTelegramSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram:
  token: secret
  notify-chat-id: 42
`), 0o600))

	cfg, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Telegram().Token())
	assert.Equal(t, int64(42), cfg.Telegram().ChatID())
}

func Test_OnFromFile_ShouldFailWhenFileIsMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
