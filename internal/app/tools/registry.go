package tools

import (
	"context"
	"time"

	"go.uber.org/zap"

	"scribe/internal/app/api"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/repository"
)

type handler func(ctx context.Context, args map[string]any) (string, error)

type tool struct {
	descriptor ToolDescriptor
	handle     handler
}

// typed adapts a handler taking a typed argument struct.
func typed[T any](fn func(ctx context.Context, in T) (string, error)) handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		var in T
		if err := bind(args, &in); err != nil {
			return "", err
		}
		return fn(ctx, in)
	}
}

// Registry holds the fixed set of tools the agent can dispatch to. It is
// immutable after construction and safe for concurrent use.
type Registry struct {
	tools []tool
	index map[ToolName]int

	transcriber api.Transcriber
	store       repository.RecordStore
	uploadDir   string
	clock       func() time.Time
	logger      *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithUploadDir sets the directory relative audio paths are resolved against.
func WithUploadDir(dir string) Option {
	return func(r *Registry) { r.uploadDir = dir }
}

// WithClock sets the clock used to timestamp records.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry registers transcribe_audio, save_record and query_records, in
// that order.
func NewRegistry(transcriber api.Transcriber, store repository.RecordStore, opts ...Option) *Registry {
	r := &Registry{
		index:       make(map[ToolName]int),
		transcriber: transcriber,
		store:       store,
		clock:       time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.register(transcribeAudioDescriptor, typed(r.transcribeAudio))
	r.register(saveRecordDescriptor, typed(r.saveRecord))
	r.register(queryRecordsDescriptor, typed(r.queryRecords))

	return r
}

func (r *Registry) register(descriptor ToolDescriptor, h handler) {
	if _, exists := r.index[descriptor.Name]; exists {
		panic("tools: duplicate tool " + string(descriptor.Name))
	}
	r.index[descriptor.Name] = len(r.tools)
	r.tools = append(r.tools, tool{descriptor: descriptor, handle: h})
}

// List returns every descriptor in registration order.
func (r *Registry) List() []ToolDescriptor {
	descriptors := make([]ToolDescriptor, len(r.tools))
	for i, t := range r.tools {
		descriptors[i] = t.descriptor
	}
	return descriptors
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name ToolName) (ToolDescriptor, error) {
	i, ok := r.index[name]
	if !ok {
		return ToolDescriptor{}, apperrors.ErrUnknownTool.Withf("tool %q not found", name)
	}
	return r.tools[i].descriptor, nil
}

// Invoke validates args against the tool's parameters and runs it.
func (r *Registry) Invoke(ctx context.Context, name ToolName, args map[string]any) (string, error) {
	i, ok := r.index[name]
	if !ok {
		return "", apperrors.ErrUnknownTool.Withf("tool %q not found", name)
	}
	t := r.tools[i]

	coerced, err := coerce(t.descriptor.Parameters, args)
	if err != nil {
		return "", err
	}

	r.logger.Debug("invoking tool", zap.String("tool", string(name)), zap.Any("arguments", coerced))
	return t.handle(ctx, coerced)
}
