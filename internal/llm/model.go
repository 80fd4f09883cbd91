package llm

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/bizhubhq/bizhub/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// ModelClient calls a model provider directly via langchaingo. Used by the
// server-side moderation path and by CLI users who hold their own key; the
// browser-facing path goes through ProxyClient instead.
type ModelClient struct {
	llm       llms.Model
	modelName string
	logger    *slog.Logger
}

var _ Completer = (*ModelClient)(nil)

// NewModelClient creates a direct-provider client based on configuration.
func NewModelClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ModelClient, error) {
	var model llms.Model
	var err error

	switch cfg.AIProvider {
	case config.ProviderGoogleAI:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("Gemini API key required")
		}
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.AIModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.AIModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.AIModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.AIModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderBedrock:
		awsCfg, cfgErr := awsconfig.LoadDefaultConfig(ctx)
		if cfgErr != nil {
			return nil, fmt.Errorf("load AWS config: %w", cfgErr)
		}
		model, err = bedrock.New(
			bedrock.WithClient(bedrockruntime.NewFromConfig(awsCfg)),
			bedrock.WithModel(cfg.AIModel),
		)
		if err != nil {
			return nil, fmt.Errorf("create bedrock model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AIProvider)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ModelClient{
		llm:       model,
		modelName: cfg.AIModel,
		logger:    logger,
	}, nil
}

// Model returns the configured model name.
func (m *ModelClient) Model() string {
	return m.modelName
}

// Complete sends an ordered conversation and returns the completion text.
func (m *ModelClient) Complete(ctx context.Context, conv Conversation) (string, error) {
	messages := make([]llms.MessageContent, 0, len(conv))
	for _, turn := range conv {
		role := llms.ChatMessageTypeHuman
		if turn.Role == RoleModel {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Text))
	}

	response, err := m.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", mapProviderError(err)
	}
	if len(response.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	return response.Choices[0].Content, nil
}

// CompletePrompt sends a single raw prompt.
func (m *ModelClient) CompletePrompt(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt)
	if err != nil {
		return "", mapProviderError(err)
	}
	return response, nil
}
