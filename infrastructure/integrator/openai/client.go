package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	gopenai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/affiliate-campaign-api/internal/config"
)

var ErrMissingAPIKey = errors.New("openai api key não configurada")

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type Completer interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

type Client struct {
	client      *gopenai.Client
	model       string
	temperature float32
	maxTokens   int
	jsonMode    bool
	timeout     time.Duration
}

func NewClient(cfg *config.OpenAI) *Client {
	var client *gopenai.Client
	if cfg.APIKey != "" {
		clientCfg := gopenai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = gopenai.NewClientWithConfig(clientCfg)
	}

	return &Client{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		jsonMode:    cfg.JSONMode,
		timeout:     cfg.Timeout,
	}
}

// Complete envia um prompt único e devolve o texto da primeira escolha
func (c *Client) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if c.client == nil {
		return "", ErrMissingAPIKey
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	messages := make([]gopenai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    gopenai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, gopenai.ChatCompletionMessage{
		Role:    gopenai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := gopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	if c.jsonMode {
		req.ResponseFormat = &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)
	if err != nil {
		logrus.WithError(err).WithField("duration_ms", duration.Milliseconds()).Error("openai: falha na chamada de chat completion")
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("openai não retornou nenhuma resposta")
	}

	logrus.WithFields(logrus.Fields{
		"model":       c.model,
		"tokens":      resp.Usage.TotalTokens,
		"duration_ms": duration.Milliseconds(),
	}).Debug("openai: chat completion concluído")

	return resp.Choices[0].Message.Content, nil
}
