package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvInt(t *testing.T) {
	t.Run("falls back when unset", func(t *testing.T) {
		t.Setenv("LEAVE_CONSUMER_MAX_RETRIES", "")
		assert.Equal(t, 3, envInt("LEAVE_CONSUMER_MAX_RETRIES", 3))
	})

	t.Run("reads the value", func(t *testing.T) {
		t.Setenv("LEAVE_CONSUMER_MAX_RETRIES", "7")
		assert.Equal(t, 7, envInt("LEAVE_CONSUMER_MAX_RETRIES", 3))
	})

	t.Run("falls back on garbage", func(t *testing.T) {
		t.Setenv("LEAVE_CONSUMER_MAX_RETRIES", "banyak")
		assert.Equal(t, 3, envInt("LEAVE_CONSUMER_MAX_RETRIES", 3))
	})
}

func TestEnvDuration(t *testing.T) {
	t.Run("falls back when unset", func(t *testing.T) {
		t.Setenv("OUTBOX_POLL_INTERVAL", "")
		assert.Equal(t, 3*time.Second, envDuration("OUTBOX_POLL_INTERVAL", 3*time.Second))
	})

	t.Run("reads the value", func(t *testing.T) {
		t.Setenv("OUTBOX_POLL_INTERVAL", "10s")
		assert.Equal(t, 10*time.Second, envDuration("OUTBOX_POLL_INTERVAL", 3*time.Second))
	})

	t.Run("falls back on garbage", func(t *testing.T) {
		t.Setenv("OUTBOX_POLL_INTERVAL", "cepat")
		assert.Equal(t, 3*time.Second, envDuration("OUTBOX_POLL_INTERVAL", 3*time.Second))
	})
}
