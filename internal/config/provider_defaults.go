package config

// Default configuration constants
const (
	// LLM providers
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultLLMProvider = ProviderGroq

	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.0-flash"

	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

	// Deepgram
	DefaultDeepgramBaseURL = "https://api.deepgram.com"

	// Storage
	DefaultUploadDir = "data/audio/uploads"
	DefaultCSVPath   = "data/transcriptions/output/history.csv"

	// Network defaults
	DefaultHost = "0.0.0.0"
	DefaultPort = 8000

	// Events
	DefaultRedisChannel = "scribe:records"

	// Object storage
	DefaultMinIOBucket = "scribe-uploads"

	// placeholderAPIKey is the value shipped in example env files.
	placeholderAPIKey = "your_api_key_here"
)

// ProviderDefaults holds the per-provider defaults for the LLM selector
type ProviderDefaults struct {
	KeyEnv  string
	Model   string
	BaseURL string
}

// GetProviderDefaults returns default configuration for a given LLM provider
func GetProviderDefaults(provider string) (ProviderDefaults, bool) {
	switch provider {
	case ProviderGroq:
		return ProviderDefaults{KeyEnv: "GROQ_API_KEY", Model: DefaultGroqModel, BaseURL: DefaultGroqBaseURL}, true
	case ProviderOpenAI:
		return ProviderDefaults{KeyEnv: "OPENAI_API_KEY", Model: DefaultOpenAIModel}, true
	case ProviderGemini:
		return ProviderDefaults{KeyEnv: "GEMINI_API_KEY", Model: DefaultGeminiModel}, true
	default:
		return ProviderDefaults{}, false
	}
}
