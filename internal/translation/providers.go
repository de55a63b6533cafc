package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const (
	// DeepSeekBaseURL is the OpenAI compatible DeepSeek API
	DeepSeekBaseURL = "https://api.deepseek.com"

	// DeepSeekModel is the default DeepSeek chat model
	DeepSeekModel = "deepseek-chat"

	// GeminiModel is the default Gemini model
	GeminiModel = "gemini-2.0-flash"
)

// DeepSeekProvider translates through the DeepSeek chat completions API
type DeepSeekProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewDeepSeekProvider creates a DeepSeek provider. An empty model selects
// DeepSeekModel, an empty baseURL selects DeepSeekBaseURL.
func NewDeepSeekProvider(apiKey, model, baseURL string) *DeepSeekProvider {
	if model == "" {
		model = DeepSeekModel
	}
	if baseURL == "" {
		baseURL = DeepSeekBaseURL
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &DeepSeekProvider{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

func (p *DeepSeekProvider) Name() string { return "DeepSeek" }
func (p *DeepSeekProvider) EnvVar() string { return "DEEPSEEK_API_KEY" }
func (p *DeepSeekProvider) Configured() bool { return p.apiKey != "" }

// Translate sends text as the user message next to the system prompt
func (p *DeepSeekProvider) Translate(ctx context.Context, text string) (string, error) {
	if p.apiKey == "" {
		return "", ErrNoAPIKey
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResult
	}

	return resp.Choices[0].Message.Content, nil
}

// GeminiProvider translates through the Google Gemini API
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
}

// NewGeminiProvider creates a Gemini provider. An empty model selects
// GeminiModel; an empty baseURL uses the library default.
func NewGeminiProvider(apiKey, model, baseURL string) *GeminiProvider {
	if model == "" {
		model = GeminiModel
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
	}
}

func (p *GeminiProvider) Name() string { return "Gemini" }
func (p *GeminiProvider) EnvVar() string { return "GEMINI_API_KEY" }
func (p *GeminiProvider) Configured() bool { return p.apiKey != "" }

// Translate sends text with the system prompt as system instruction
func (p *GeminiProvider) Translate(ctx context.Context, text string) (string, error) {
	if p.apiKey == "" {
		return "", ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      p.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: p.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](Temperature),
		MaxOutputTokens:   MaxTokens,
	})
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

// NewProvider creates the provider called name ("deepseek" or "gemini")
func NewProvider(name, apiKey, model string) (Provider, error) {
	switch name {
	case "", "deepseek":
		return NewDeepSeekProvider(apiKey, model, ""), nil
	case "gemini":
		return NewGeminiProvider(apiKey, model, ""), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (use deepseek or gemini)", name)
	}
}
