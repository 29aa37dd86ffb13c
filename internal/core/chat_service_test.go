package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChatServiceUnconfigured(t *testing.T) {
	s := NewChatService("", zap.NewNop())

	t.Run("reports unavailable", func(t *testing.T) {
		assert.False(t, s.Available())
	})

	t.Run("send surfaces a service error, never panics", func(t *testing.T) {
		_, _, err := s.Send(context.Background(), "", "hello")
		assert.ErrorIs(t, err, ErrChatUnavailable)
	})

	t.Run("close is safe without a client", func(t *testing.T) {
		s.Close()
	})
}
