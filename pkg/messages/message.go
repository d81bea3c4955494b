package messages

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) String() string { return string(r) }

// Message is one entry of an inference input transcript.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// System is the optional system prompt of a transcript.
// It holds either plain text or an arbitrary structured value, never both.
type System struct {
	Text  string // Plain text system prompt
	Value any    // Structured system prompt, json.RawMessage when decoded
	_     struct{}
}

// SystemText creates a plain text system prompt.
func SystemText(text string) System {
	return System{Text: text}
}

// SystemValue creates a structured system prompt.
func SystemValue(value any) System {
	return System{Value: value}
}

// IsZero reports whether no system prompt is present.
// An empty text prompt counts as absent.
func (s System) IsZero() bool {
	return s.Text == "" && s.Value == nil
}

// IsText reports whether the system prompt is plain text.
func (s System) IsText() bool {
	return s.Value == nil && s.Text != ""
}

// MarshalJSON implements json.Marshaler interface for System.
func (s System) MarshalJSON() ([]byte, error) {
	if s.Value != nil {
		if strings.TrimSpace(s.Text) != "" {
			return nil, errors.New("both Text and Value are set")
		}
		return json.Marshal(s.Value)
	}
	if s.Text == "" {
		return jsonNull, nil
	}
	return json.Marshal(s.Text)
}

// UnmarshalJSON implements json.Unmarshaler interface for System.
// A JSON string becomes Text, null leaves the prompt absent and
// anything else is kept as raw JSON in Value.
func (s *System) UnmarshalJSON(input []byte) error {
	if !gjson.ValidBytes(input) {
		return fmt.Errorf("invalid json: %s", input)
	}
	jv := gjson.ParseBytes(input)
	switch jv.Type {
	case gjson.Null:
		*s = System{}
	case gjson.String:
		*s = System{Text: jv.String()}
	default:
		*s = System{Value: json.RawMessage(jv.Raw)}
	}
	return nil
}

// Input is a stored inference input: an optional system prompt and the
// messages that were sent to the model.
type Input struct {
	InferenceID uuid.UUID       `json:"inference_id,omitempty"`
	Timestamp   strfmt.DateTime `json:"timestamp,omitempty"`
	System      System          `json:"system,omitempty"`
	Messages    []Message       `json:"messages"`
}

// ParseInput decodes an Input document.
func ParseInput(data []byte) (*Input, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("input is not valid json")
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return &in, nil
}
