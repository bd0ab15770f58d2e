package tools

import (
	"strings"

	apperrors "scribe/internal/app/errors"
)

// ToolName identifies a registered tool.
type ToolName string

const (
	TranscribeAudio ToolName = "transcribe_audio"
	SaveRecord      ToolName = "save_record"
	QueryRecords    ToolName = "query_records"
)

var toolNames = []ToolName{TranscribeAudio, SaveRecord, QueryRecords}

// ParseToolName maps a raw name to a ToolName.
func ParseToolName(name string) (ToolName, error) {
	for _, n := range toolNames {
		if string(n) == strings.TrimSpace(name) {
			return n, nil
		}
	}
	return "", apperrors.ErrUnknownTool.Withf("tool %q not found", name)
}

// ParamType is the declared JSON type of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
)

// Parameter describes one tool argument.
type Parameter struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any
	Description string
}

// ToolDescriptor is what the model sees of a tool.
type ToolDescriptor struct {
	Name        ToolName
	Description string
	Parameters  []Parameter
}

// RequiredNames returns the names of the required parameters.
func (d ToolDescriptor) RequiredNames() []string {
	var names []string
	for _, p := range d.Parameters {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// ToolCall is a model's request to run a tool.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}
