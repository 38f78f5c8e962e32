package actordemo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun_DeliversEveryMessage(t *testing.T) {
	cfg := Config{
		WorkerCount:      2,
		RunQueueCapacity: 32,
		MailboxCapacity:  16,
		ActorCount:       5,
		ProducerCount:    3,
		MessagesEach:     50,
		ShutdownTimeout:  5 * time.Second,
	}

	result, err := Run(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, cfg.ActorCount, result.ActorCount)
	assert.Equal(t, cfg.ProducerCount*cfg.MessagesEach, result.TotalSent)
	assert.Equal(t, int64(cfg.ProducerCount*cfg.MessagesEach), result.TotalCounted)
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	_, err := Run(Config{ActorCount: 0, ProducerCount: 1, MessagesEach: 1, ShutdownTimeout: time.Second}, zap.NewNop())
	assert.Error(t, err)
}
