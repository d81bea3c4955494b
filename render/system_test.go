package render

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casualjim/snippet/pkg/messages"
)

func TestSerializeSystem(t *testing.T) {
	tests := []struct {
		name   string
		system messages.System
		want   Descriptor
	}{
		{
			name:   "text",
			system: messages.SystemText("hello"),
			want:   Text{Content: "hello"},
		},
		{
			name:   "map",
			system: messages.SystemValue(map[string]any{"a": 1}),
			want:   Text{Content: "{\n  \"a\": 1\n}", Code: true},
		},
		{
			name:   "raw json keeps key order",
			system: messages.SystemValue(json.RawMessage(`{"z":"last","a":"first"}`)),
			want:   Text{Content: "{\n  \"z\": \"last\",\n  \"a\": \"first\"\n}", Code: true},
		},
		{
			name:   "empty object",
			system: messages.SystemValue(map[string]any{}),
			want:   Text{Content: "{}", Code: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SerializeSystem(tt.system)
			require.NoError(t, result.Err)
			assert.Equal(t, tt.want, result.Descriptor())
		})
	}
}

func TestSerializeSystem_Failure(t *testing.T) {
	result := SerializeSystem(messages.SystemValue(map[string]any{"callback": func() {}}))
	require.Error(t, result.Err)
	assert.Empty(t, result.Content)

	d, ok := result.Descriptor().(SerializationError)
	require.True(t, ok)
	assert.Equal(t, "Error serializing system field: "+result.Err.Error(), d.Message)
}

func TestSerializeSystem_Cycle(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	result := SerializeSystem(messages.SystemValue(cyclic))
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "cycle")
	assert.Empty(t, result.Content)
	assert.IsType(t, SerializationError{}, result.Descriptor())
}
