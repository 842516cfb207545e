package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"agent-server/config"
)

// NewChatModel 根据配置构造OpenAI聊天模型，供agent的工具调用循环使用
func NewChatModel(ctx context.Context, cfg config.OpenAIConfig) (model.ToolCallingChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}

	conf := &openai.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	chat, err := openai.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("create openai chat model: %w", err)
	}
	return chat, nil
}
