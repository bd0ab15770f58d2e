package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"scribe/internal/app/agent"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/tools"
)

const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 4096
)

// Config configures a ToolSelector. Provider names the backend in errors
// and logs ("groq" or "openai"). An empty BaseURL means api.openai.com.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

// ToolSelector picks tools through an OpenAI-compatible chat completions
// endpoint with function calling.
type ToolSelector struct {
	client *openai.Client
	config Config
	logger *zap.Logger
}

var _ agent.Selector = (*ToolSelector)(nil)

// NewToolSelector creates a selector. logger may be nil.
func NewToolSelector(config Config, logger *zap.Logger) *ToolSelector {
	if config.Provider == "" {
		config.Provider = "openai"
	}
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}

	return &ToolSelector{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: logger.Named(config.Provider),
	}
}

// Select sends the prompt with every tool declared and returns the first
// tool call of the reply, or its text when the model calls none.
func (s *ToolSelector) Select(ctx context.Context, prompt agent.Prompt) (agent.Decision, error) {
	request := openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.Message},
		},
		Tools:       Tools(prompt.Tools),
		ToolChoice:  "auto",
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return agent.Decision{}, s.wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return agent.Decision{}, apperrors.ErrProvider.Withf("%s returned no choices", s.config.Provider)
	}

	message := resp.Choices[0].Message
	if len(message.ToolCalls) == 0 {
		return agent.Decision{Text: message.Content}, nil
	}

	call := message.ToolCalls[0]
	if len(message.ToolCalls) > 1 {
		s.logger.Debug("ignoring extra tool calls", zap.Int("count", len(message.ToolCalls)))
	}

	args, err := DecodeArguments(call.Function.Arguments)
	if err != nil {
		return agent.Decision{}, err
	}
	return agent.Decision{ToolCall: &tools.ToolCall{Name: call.Function.Name, Arguments: args}}, nil
}

func (s *ToolSelector) wrapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &apperrors.ProviderError{Provider: s.config.Provider, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &apperrors.ProviderError{Provider: s.config.Provider, StatusCode: reqErr.HTTPStatusCode, Body: string(reqErr.Body)}
	}
	return apperrors.ErrProvider.Wrap(err, s.config.Provider+" request failed")
}

// DecodeArguments parses a tool call's JSON arguments. Blank means none.
func DecodeArguments(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, apperrors.ErrArgumentValidation.Wrap(err, "tool arguments are not a JSON object")
	}
	return args, nil
}

// Tools converts descriptors to function tool definitions.
func Tools(descriptors []tools.ToolDescriptor) []openai.Tool {
	out := make([]openai.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		properties := make(map[string]jsonschema.Definition, len(d.Parameters))
		for _, p := range d.Parameters {
			properties[p.Name] = jsonschema.Definition{
				Type:        schemaType(p.Type),
				Description: describe(p),
			}
		}

		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(d.Name),
				Description: d.Description,
				Parameters: jsonschema.Definition{
					Type:       jsonschema.Object,
					Properties: properties,
					Required:   d.RequiredNames(),
				},
			},
		})
	}
	return out
}

func schemaType(t tools.ParamType) jsonschema.DataType {
	switch t {
	case tools.TypeNumber:
		return jsonschema.Number
	case tools.TypeInteger:
		return jsonschema.Integer
	case tools.TypeBoolean:
		return jsonschema.Boolean
	default:
		return jsonschema.String
	}
}

func describe(p tools.Parameter) string {
	if p.Default == nil {
		return p.Description
	}
	b, _ := json.Marshal(p.Default)
	return p.Description + " (default: " + string(b) + ")"
}
