package gemini

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"scribe/internal/app/agent"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/tools"
)

const providerName = "gemini"

// Config configures a ToolSelector. BaseURL overrides the Gemini API
// endpoint and is empty in production.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int32
}

// ToolSelector picks tools through Gemini function calling.
type ToolSelector struct {
	client *genai.Client
	config Config
	logger *zap.Logger
}

var _ agent.Selector = (*ToolSelector)(nil)

// NewToolSelector creates a Gemini selector. logger may be nil.
func NewToolSelector(ctx context.Context, config Config, logger *zap.Logger) (*ToolSelector, error) {
	if config.Temperature == 0 {
		config.Temperature = 0.1
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 4096
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      config.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: config.Timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: config.BaseURL},
	})
	if err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "create Gemini client")
	}

	return &ToolSelector{client: client, config: config, logger: logger.Named(providerName)}, nil
}

// Select implements agent.Selector. The first function call wins.
func (s *ToolSelector) Select(ctx context.Context, prompt agent.Prompt) (agent.Decision, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.config.Model, genai.Text(prompt.Message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Tools:             []*genai.Tool{{FunctionDeclarations: FunctionDeclarations(prompt.Tools)}},
		Temperature:       genai.Ptr(s.config.Temperature),
		MaxOutputTokens:   s.config.MaxTokens,
	})
	if err != nil {
		return agent.Decision{}, wrapError(err)
	}

	if calls := resp.FunctionCalls(); len(calls) > 0 {
		args := calls[0].Args
		if args == nil {
			args = map[string]any{}
		}
		return agent.Decision{ToolCall: &tools.ToolCall{Name: calls[0].Name, Arguments: args}}, nil
	}

	return agent.Decision{Text: resp.Text()}, nil
}

func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &apperrors.ProviderError{Provider: providerName, StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &apperrors.ProviderError{Provider: providerName, StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return apperrors.ErrProvider.Wrap(err, "gemini request failed")
}

// FunctionDeclarations converts descriptors to Gemini function declarations.
func FunctionDeclarations(descriptors []tools.ToolDescriptor) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(descriptors))
	for _, d := range descriptors {
		properties := make(map[string]*genai.Schema, len(d.Parameters))
		for _, p := range d.Parameters {
			properties[p.Name] = &genai.Schema{Type: schemaType(p.Type), Description: p.Description}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        string(d.Name),
			Description: d.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   d.RequiredNames(),
			},
		})
	}
	return out
}

func schemaType(t tools.ParamType) genai.Type {
	switch t {
	case tools.TypeNumber:
		return genai.TypeNumber
	case tools.TypeInteger:
		return genai.TypeInteger
	case tools.TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
