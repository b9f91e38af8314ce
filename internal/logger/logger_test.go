package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndWarn(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	defer Set(nil)

	Warn("publish failed", zap.Int64("order_id", 7))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "publish failed", entries[0].Message)
		assert.Equal(t, int64(7), entries[0].ContextMap()["order_id"])
	}
}

func TestSetNilFallsBackToNop(t *testing.T) {
	Set(nil)
	assert.NotNil(t, L())
	Info("ignored")
}
