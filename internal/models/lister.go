package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when listing without an API key
var ErrNoAPIKey = errors.New("DeepSeek API key not found. Set DEEPSEEK_API_KEY environment variable or configure backend.deepseek_key in .modtranslator.yaml")

// Lister handles listing available provider models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister for the OpenAI compatible API at baseURL
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Models returns the sorted model IDs, split into chat and reasoning models
func (l *Lister) Models(ctx context.Context) (chat, reasoning []string, err error) {
	if l.apiKey == "" {
		return nil, nil, ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list models: %w", err)
	}

	for _, model := range models.Models {
		if strings.Contains(model.ID, "reasoner") {
			reasoning = append(reasoning, model.ID)
		} else {
			chat = append(chat, model.ID)
		}
	}

	sort.Strings(chat)
	sort.Strings(reasoning)
	return chat, reasoning, nil
}

// ListAvailableModels prints the available models to w, marking current
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer, current string) error {
	chat, reasoning, err := l.Models(ctx)
	if err != nil {
		return err
	}

	print := func(models []string) {
		if len(models) == 0 {
			fmt.Fprintln(w, "  No models found")
			return
		}
		for _, model := range models {
			marker := " "
			if model == current {
				marker = "*"
			}
			fmt.Fprintf(w, " %s %s\n", marker, model)
		}
	}

	fmt.Fprintln(w, "Chat models (recommended for mod translation):")
	print(chat)

	fmt.Fprintln(w, "\nReasoning models:")
	print(reasoning)

	return nil
}
