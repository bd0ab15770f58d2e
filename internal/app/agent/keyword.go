package agent

import (
	"context"
	"strings"

	"scribe/internal/app/tools"
)

var historyKeywords = []string{"historial", "historico", "histórico", "history", "consultar", "buscar", "search"}

// HelpText is the keyword selector's reply when nothing matches.
const HelpText = "The AI assistant is not configured, so only basic commands are available:\n" +
	"- upload an audio file and include \"transcribe\" in your message to transcribe it\n" +
	"- ask for your \"history\" to see the latest transcriptions"

// KeywordSelector routes messages by keyword. It serves when no LLM key is
// configured.
type KeywordSelector struct{}

// Select implements Selector.
func (KeywordSelector) Select(_ context.Context, prompt Prompt) (Decision, error) {
	message := strings.ToLower(prompt.UserText)

	for _, keyword := range historyKeywords {
		if strings.Contains(message, keyword) {
			return Decision{ToolCall: &tools.ToolCall{
				Name:      string(tools.QueryRecords),
				Arguments: map[string]any{"limit": 5},
			}}, nil
		}
	}

	if strings.Contains(message, "transcrib") && prompt.AttachmentPath != "" {
		return Decision{ToolCall: &tools.ToolCall{
			Name:      string(tools.TranscribeAudio),
			Arguments: map[string]any{"audio_file": prompt.AttachmentPath, "language": "es"},
		}}, nil
	}

	return Decision{Text: HelpText}, nil
}
