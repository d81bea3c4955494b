package render

import (
	"github.com/casualjim/snippet/pkg/jsonx"
	"github.com/casualjim/snippet/pkg/messages"
)

// SystemResult is the outcome of serializing a system prompt: either the
// content to display or the error that prevented serialization.
type SystemResult struct {
	Content string
	Code    bool
	Err     error
}

// SerializeSystem serializes a system prompt for display.
// Text prompts are returned as is, structured prompts are pretty printed.
func SerializeSystem(system messages.System) SystemResult {
	if system.Value == nil {
		return SystemResult{Content: system.Text}
	}
	content, err := jsonx.Pretty(system.Value)
	if err != nil {
		return SystemResult{Err: err}
	}
	return SystemResult{Content: content, Code: true}
}

// Descriptor returns the descriptor shown in the system section.
func (r SystemResult) Descriptor() Descriptor {
	if r.Err != nil {
		return SerializationError{Message: "Error serializing system field: " + r.Err.Error()}
	}
	return Text{Content: r.Content, Code: r.Code}
}
