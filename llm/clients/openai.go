package clients

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/sashabaranov/go-openai"
	"github.com/stardustagi/NovelServer/libs/errors"
	"github.com/stardustagi/NovelServer/llm/models"
	"github.com/stardustagi/NovelServer/utils"
)

const (
	DefaultModel = openai.GPT3Dot5Turbo
	ProviderName = "openai"

	SystemPrompt = "You are an AI writing assistant that continues existing text based on context from prior text. " +
		"Give more weight/priority to the later characters than the beginning ones. " +
		"Limit your response to no more than 200 characters, but make sure to construct complete sentences."
)

type OpenAIConfig struct {
	APIKey       string `json:"api_key" toml:"api_key"`
	BaseURL      string `json:"base_url" toml:"base_url"`
	Organization string `json:"organization" toml:"organization"`
	Model        string `json:"model" toml:"model"`
}

// LoadOpenAIConfig 解析 [openai] 配置段, api_key 为空时读取 OPENAI_API_KEY
func LoadOpenAIConfig(raw []byte) (OpenAIConfig, error) {
	var cfg OpenAIConfig
	if len(raw) > 0 {
		var err error
		if cfg, err = utils.Bytes2Struct[OpenAIConfig](raw); err != nil {
			return cfg, err
		}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}

// OpenAICompleter 凭证在首次请求时才检查
type OpenAICompleter struct {
	config OpenAIConfig
	once   sync.Once
	client *openai.Client
}

func NewOpenAICompleter(config OpenAIConfig) *OpenAICompleter {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &OpenAICompleter{config: config}
}

func (m *OpenAICompleter) EnsureConfigured() error {
	if m.config.APIKey == "" {
		return errors.NewConfigurationError("missing OpenAI API key")
	}
	m.once.Do(func() {
		cfg := openai.DefaultConfig(m.config.APIKey)
		if m.config.BaseURL != "" {
			cfg.BaseURL = m.config.BaseURL
		}
		cfg.OrgID = m.config.Organization
		m.client = openai.NewClientWithConfig(cfg)
	})
	return nil
}

// ChatRequest 固定的采样参数
func (m *OpenAICompleter) ChatRequest(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: m.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:      0.7,
		TopP:             1,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		N:                1,
		Stream:           true,
	}
}

func (m *OpenAICompleter) Stream(ctx context.Context, req models.CompletionRequest) (models.CompletionStream, error) {
	if err := m.EnsureConfigured(); err != nil {
		return nil, err
	}
	stream, err := m.client.CreateChatCompletionStream(ctx, m.ChatRequest(req.Prompt))
	if err != nil {
		return nil, errors.NewUpstreamError(err, ProviderName)
	}
	return &openAIStream{stream: stream}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

// Recv 跳过空的增量
func (s *openAIStream) Recv() (models.CompletionChunk, error) {
	for {
		resp, err := s.stream.Recv()
		if err == io.EOF {
			return models.CompletionChunk{}, io.EOF
		}
		if err != nil {
			return models.CompletionChunk{}, errors.NewUpstreamError(err, ProviderName)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		choice := resp.Choices[0]
		if choice.Delta.Content == "" {
			continue
		}
		return models.CompletionChunk{
			Text:         choice.Delta.Content,
			FinishReason: string(choice.FinishReason),
		}, nil
	}
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}
