package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidateTimeout validates timeout duration. Zero means no timeout.
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout < 0 {
		return fmt.Errorf("%s timeout cannot be negative", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port int, name string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s port must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

// ValidateProvider validates the LLM provider name
func ValidateProvider(provider string) error {
	if _, ok := GetProviderDefaults(provider); !ok {
		return fmt.Errorf("unsupported LLM_PROVIDER %q (expected %s, %s or %s)", provider, ProviderGroq, ProviderOpenAI, ProviderGemini)
	}
	return nil
}

// isMissingKey reports whether an API key is absent or still the example placeholder.
func isMissingKey(key string) bool {
	key = strings.TrimSpace(key)
	return key == "" || key == placeholderAPIKey
}
