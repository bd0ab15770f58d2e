package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/metrics"
	"scribe/internal/app/tools"
)

// SystemPrompt frames every model call.
const SystemPrompt = "You are an expert audio transcription assistant. " +
	"Analyse the user's message and use the most appropriate tool for their intent. " +
	"Use transcribe_audio when the user provides an audio file to transcribe, " +
	"save_record when they give you a transcription to store, " +
	"and query_records when they ask about previous transcriptions."

// fallbackAnswer replaces a blank model reply.
const fallbackAnswer = "I could not work out what to do with that. " +
	"Ask me to transcribe an uploaded audio file or to search your transcription history."

// Prompt is the input of one model call. Message is UserText with the
// attachment note appended.
type Prompt struct {
	System         string
	Message        string
	UserText       string
	AttachmentPath string
	Tools          []tools.ToolDescriptor
}

// Decision is the model's answer: a tool call, or direct text when ToolCall
// is nil.
type Decision struct {
	ToolCall *tools.ToolCall
	Text     string
}

// Selector asks a model which tool, if any, should handle a prompt.
type Selector interface {
	Select(ctx context.Context, prompt Prompt) (Decision, error)
}

// Invoker runs registered tools.
type Invoker interface {
	List() []tools.ToolDescriptor
	Invoke(ctx context.Context, name tools.ToolName, args map[string]any) (string, error)
}

// Request is one user turn.
type Request struct {
	Message        string
	AttachmentPath string
}

// Agent routes a user message to at most one tool.
type Agent struct {
	selector Selector
	tools    Invoker
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// New creates an Agent. logger and m may be nil.
func New(selector Selector, invoker Invoker, logger *zap.Logger, m *metrics.Metrics) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		selector: selector,
		tools:    invoker,
		logger:   logger.Named("agent"),
		metrics:  m,
	}
}

// Run handles one request and always returns non-empty text. Failures are
// reported in the text, never as an error.
func (a *Agent) Run(ctx context.Context, req Request) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("agent panic", zap.Any("panic", r), zap.Stack("stack"))
			a.metrics.ObserveDispatch("", metrics.OutcomeError)
			reply = "Error processing your request: internal error"
		}
	}()

	message := strings.TrimSpace(req.Message)
	if req.AttachmentPath != "" {
		message = fmt.Sprintf("%s. Uploaded file: %s", message, req.AttachmentPath)
	}

	decision, err := a.selector.Select(ctx, Prompt{
		System:         SystemPrompt,
		Message:        message,
		UserText:       req.Message,
		AttachmentPath: req.AttachmentPath,
		Tools:          a.tools.List(),
	})
	if err != nil {
		a.logger.Warn("model call failed", zap.Error(err))
		a.metrics.ObserveDispatch("", metrics.OutcomeError)
		return "Error processing your request: " + err.Error()
	}

	if decision.ToolCall == nil {
		a.logger.Info("direct answer")
		a.metrics.ObserveDispatch("", metrics.OutcomeSuccess)
		if text := strings.TrimSpace(decision.Text); text != "" {
			return text
		}
		return fallbackAnswer
	}

	return a.dispatch(ctx, *decision.ToolCall)
}

func (a *Agent) dispatch(ctx context.Context, call tools.ToolCall) string {
	name, err := tools.ParseToolName(call.Name)
	if err != nil {
		a.logger.Warn("model selected unknown tool", zap.String("tool", call.Name))
		a.metrics.ObserveDispatch("unknown", metrics.OutcomeError)
		return fmt.Sprintf("Error: tool %s not found.", call.Name)
	}

	logger := a.logger.With(zap.String("tool", string(name)))
	logger.Info("dispatching tool call", zap.Any("arguments", call.Arguments))

	text, err := a.tools.Invoke(ctx, name, call.Arguments)
	if err != nil {
		logger.Warn("tool failed", zap.Error(err))
		a.metrics.ObserveDispatch(string(name), metrics.OutcomeError)
		if errors.Is(err, apperrors.ErrUnknownTool) {
			return fmt.Sprintf("Error: tool %s not found.", name)
		}
		return "Error: " + err.Error()
	}

	a.metrics.ObserveDispatch(string(name), metrics.OutcomeSuccess)
	if strings.TrimSpace(text) == "" {
		return fmt.Sprintf("Tool %s completed.", name)
	}
	return text
}
