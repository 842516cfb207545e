package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-server/config"
)

func TestNewChatModelRequiresAPIKey(t *testing.T) {
	_, err := NewChatModel(context.Background(), config.OpenAIConfig{Model: "gpt-4o"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

func TestNewChatModel(t *testing.T) {
	chat, err := NewChatModel(context.Background(), config.OpenAIConfig{
		APIKey: "sk-test",
		Model:  "gpt-4o",
	})
	require.NoError(t, err)
	assert.NotNil(t, chat)
}
