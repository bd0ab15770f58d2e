package deepgram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"

	"scribe/internal/app/api"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/metrics"
)

const (
	providerName = "deepgram"

	// DefaultBaseURL is the hosted Deepgram API.
	DefaultBaseURL = "https://api.deepgram.com"

	// maxErrorBody bounds how much of a failed response is kept.
	maxErrorBody = 4 << 10
)

// Model is a Deepgram speech model.
type Model string

const (
	ModelNova2    Model = "nova-2"
	ModelNova     Model = "nova"
	ModelBase     Model = "base"
	ModelEnhanced Model = "enhanced"

	DefaultModel = ModelNova2
)

var models = []Model{ModelNova2, ModelNova, ModelBase, ModelEnhanced}

var supportedExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac", ".mp4"}

// QualifiedName is the model name stored in history records.
func (m Model) QualifiedName() string {
	return providerName + "-" + string(m)
}

// ParseModel validates a model name.
func ParseModel(name string) (Model, error) {
	m := Model(strings.TrimSpace(name))
	if !slices.Contains(models, m) {
		return "", apperrors.ErrInvalidModel.Withf("%q is not available. Available models: %s", name, strings.Join(SupportedModels(), ", "))
	}
	return m, nil
}

// SupportedModels lists the accepted model names.
func SupportedModels() []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = string(m)
	}
	return names
}

// SupportedExtensions lists the accepted audio file extensions.
func SupportedExtensions() []string {
	return slices.Clone(supportedExtensions)
}

// ValidateExtension checks the extension of filename, case-insensitively.
func ValidateExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(supportedExtensions, ext) {
		return apperrors.ErrUnsupportedFormat.Withf("%q is not supported. Supported formats: %s", ext, strings.Join(supportedExtensions, ", "))
	}
	return nil
}

// Config configures the Deepgram client. A zero Timeout means no timeout.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client transcribes audio through the Deepgram pre-recorded API.
type Client struct {
	config  Config
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

var _ api.Transcriber = (*Client)(nil)

// NewClient creates a Deepgram client. logger and m may be nil.
func NewClient(config Config, logger *zap.Logger, m *metrics.Metrics) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		logger:  logger.Named(providerName),
		metrics: m,
	}
}

// Transcribe sends audio to Deepgram and returns the first transcript
// alternative. An empty language asks Deepgram to detect it.
//
// The extension, model and key are checked, in that order, before any
// network call. The call is made once, without retries.
func (c *Client) Transcribe(ctx context.Context, audio api.Audio, model string, language string) (*api.Result, error) {
	if err := ValidateExtension(audio.Filename); err != nil {
		return nil, err
	}
	m, err := ParseModel(model)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.config.APIKey) == "" {
		return nil, apperrors.ErrConfiguration.Withf("DEEPGRAM_API_KEY not configured")
	}
	language = strings.TrimSpace(language)

	req, err := c.newRequest(ctx, audio.Body, m, language)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With(
		zap.String("filename", audio.Filename),
		zap.String("model", string(m)),
		zap.String("language", language),
	)
	logger.Debug("sending audio to Deepgram")

	start := time.Now()
	body, err := c.do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveTranscription(m.QualifiedName(), metrics.OutcomeError, elapsed)
		logger.Warn("Deepgram request failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return nil, err
	}

	text, detected, err := parseTranscript(body)
	if err != nil {
		c.metrics.ObserveTranscription(m.QualifiedName(), metrics.OutcomeError, elapsed)
		return nil, err
	}
	c.metrics.ObserveTranscription(m.QualifiedName(), metrics.OutcomeSuccess, elapsed)

	if language == "" {
		language = detected
	}
	logger.Info("transcription completed",
		zap.Duration("elapsed", elapsed),
		zap.Int("characters", len(text)),
	)

	return &api.Result{
		Text:     text,
		Elapsed:  elapsed,
		Model:    m.QualifiedName(),
		Language: language,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, body io.Reader, m Model, language string) (*http.Request, error) {
	query := url.Values{}
	query.Set("model", string(m))
	if language != "" {
		query.Set("language", language)
	} else {
		query.Set("detect_language", "true")
	}

	endpoint := fmt.Sprintf("%s/v1/listen?%s", c.config.BaseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, apperrors.ErrConfiguration.Wrap(err, "build Deepgram request")
	}

	req.Header.Set("Authorization", "Token "+c.config.APIKey)
	req.Header.Set("Content-Type", "audio/*")
	return req, nil
}

// do performs the request and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrProvider.Wrap(err, "call Deepgram API")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &apperrors.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrProvider.Wrap(err, "read Deepgram response")
	}
	return body, nil
}

// parseTranscript extracts results.channels[0].alternatives[0].transcript
// and the detected language, when present.
func parseTranscript(body []byte) (string, string, error) {
	channel, _, _, err := jsonparser.Get(body, "results", "channels", "[0]")
	if err != nil {
		return "", "", apperrors.ErrProvider.Wrap(err, "unexpected Deepgram response")
	}

	transcript, err := jsonparser.GetString(channel, "alternatives", "[0]", "transcript")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return "", "", apperrors.ErrProvider.Wrap(err, "unexpected Deepgram response")
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", "", apperrors.ErrEmptyResult.Withf("Deepgram returned no transcript")
	}

	detected, _ := jsonparser.GetString(channel, "detected_language")
	return transcript, detected, nil
}
