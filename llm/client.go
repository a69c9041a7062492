package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/bububa/instructor-go/pkg/instructor"
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/banksight/banksight/components"
	"github.com/banksight/banksight/schema"
)

// Providers selectable at startup. Groq speaks the OpenAI wire protocol and
// only differs in base URL and model names.
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Config holds the generation client settings.
type Config struct {
	client      instructor.Instructor
	model       string
	temperature float32
	maxTokens   int
}

// Option is a Client config option
type Option func(*Config)

// WithClient sets a pre-built instructor client, bypassing provider
// construction. Used by tests.
func WithClient(clt instructor.Instructor) Option {
	return func(c *Config) {
		c.client = clt
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

// WithMaxTokens sets the response token cap.
func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

// Client is an instructor-backed Generator. The provider is chosen once at
// construction; there is no per-request fallback.
type Client struct {
	Config
}

// NewClient builds a Client for the given provider. API keys come from the
// environment (OPENAI_API_KEY, GROQ_API_KEY, ANTHROPIC_API_KEY); baseURL
// overrides the provider default when non-empty.
func NewClient(provider, baseURL string, options ...Option) (*Client, error) {
	ret := new(Client)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.client != nil {
		return ret, nil
	}
	switch provider {
	case ProviderAnthropic:
		authToken := os.Getenv("ANTHROPIC_API_KEY")
		opts := make([]anthropic.ClientOption, 0, 1)
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		clt := anthropic.NewClient(authToken, opts...)
		ret.client = instructor.FromAnthropic(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3))
	case ProviderGroq:
		cfg := openai.DefaultConfig(os.Getenv("GROQ_API_KEY"))
		cfg.BaseURL = groqBaseURL
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		clt := openai.NewClientWithConfig(cfg)
		ret.client = instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3))
	case ProviderOpenAI:
		cfg := openai.DefaultConfig(os.Getenv("OPENAI_API_KEY"))
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		clt := openai.NewClientWithConfig(cfg)
		ret.client = instructor.FromOpenAI(clt, instructor.WithMode(instructor.ModeJSON), instructor.WithMaxRetries(3))
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	return ret, nil
}

// Generate sends a single user prompt with the banking system prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []components.Message{
		*components.NewMessage(components.SystemRole, schema.String(BankingAssistantSystem)),
		*components.NewMessage(components.UserRole, schema.String(prompt)),
	}
	return c.GenerateMessages(ctx, messages)
}

// GenerateMessages sends a full role-tagged message history and returns the
// response text.
func (c *Client) GenerateMessages(ctx context.Context, messages []components.Message) (string, error) {
	var response schema.String
	switch clt := c.client.(type) {
	case *instructor.InstructorOpenAI:
		chatReq := openai.ChatCompletionRequest{
			Model:               c.model,
			Temperature:         c.temperature,
			MaxCompletionTokens: c.maxTokens,
		}
		for _, msg := range messages {
			v := new(openai.ChatCompletionMessage)
			msg.ToOpenAI(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if _, err := clt.CreateChatCompletion(ctx, chatReq, &response); err != nil {
			return "", fmt.Errorf("%w: %v", ErrGeneration, err)
		}
	case *instructor.InstructorAnthropic:
		chatReq := anthropic.MessagesRequest{
			Model:       anthropic.Model(c.model),
			Temperature: &c.temperature,
			MaxTokens:   c.maxTokens,
		}
		for _, msg := range messages {
			if msg.Role() == components.SystemRole {
				chatReq.System = schema.Stringify(msg.Content())
				continue
			}
			v := new(anthropic.Message)
			msg.ToAnthropic(v)
			chatReq.Messages = append(chatReq.Messages, *v)
		}
		if _, err := clt.CreateMessages(ctx, chatReq, &response); err != nil {
			return "", fmt.Errorf("%w: %v", ErrGeneration, err)
		}
	default:
		return "", fmt.Errorf("%w: no provider configured", ErrGeneration)
	}
	return response.String(), nil
}
