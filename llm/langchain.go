package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/vietravel-ai/travelbot/config"
)

// LangChainModel implements Model over a langchaingo llms.Model.
// Every call runs under its own timeout so a stalled provider cannot
// block a turn indefinitely.
type LangChainModel struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

var _ Model = (*LangChainModel)(nil)

// NewLangChainModel wraps an existing langchaingo model
func NewLangChainModel(model llms.Model, temperature float64, timeout time.Duration) *LangChainModel {
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	return &LangChainModel{
		model:       model,
		temperature: temperature,
		timeout:     timeout,
	}
}

// NewFromConfig builds the production model client from configuration.
// Azure OpenAI is selected when an Azure endpoint is configured.
func NewFromConfig(cfg *config.Config) (*LangChainModel, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}

	if cfg.UseAzure() {
		opts = append(opts,
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithBaseURL(cfg.AzureEndpoint),
			openai.WithAPIVersion(cfg.AzureAPIVersion),
			openai.WithModel(cfg.AzureDeployment),
		)
	} else {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create openai client: %w", err)
	}

	return NewLangChainModel(model, cfg.Temperature, cfg.RequestTimeout), nil
}

// Chat performs one plain chat completion over the given turns
func (m *LangChainModel) Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages)+1)
	if systemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	for _, msg := range messages {
		content = append(content, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}

	return m.generate(ctx, content)
}

// Vision performs one completion with a single image attachment
func (m *LangChainModel) Vision(ctx context.Context, systemPrompt, prompt, imageDataURI string) (string, error) {
	content := make([]llms.MessageContent, 0, 2)
	if systemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	content = append(content, llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(prompt),
			llms.ImageURLPart(imageDataURI),
		},
	})

	return m.generate(ctx, content)
}

func (m *LangChainModel) generate(ctx context.Context, content []llms.MessageContent) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	resp, err := m.model.GenerateContent(ctx, content, llms.WithTemperature(m.temperature))
	if err != nil {
		return "", fmt.Errorf("llm: completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

func chatMessageType(role Role) llms.ChatMessageType {
	switch role {
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
