package jsonx

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPretty(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	tests := []struct {
		name    string
		input   any
		want    string
		wantErr bool
	}{
		{
			name:  "flat object",
			input: map[string]int{"a": 1},
			want:  "{\n  \"a\": 1\n}",
		},
		{
			name: "struct keeps field order",
			input: struct {
				Zeta  string `json:"zeta"`
				Alpha []int  `json:"alpha"`
			}{Zeta: "z", Alpha: []int{1, 2}},
			want: "{\n  \"zeta\": \"z\",\n  \"alpha\": [\n    1,\n    2\n  ]\n}",
		},
		{
			name:  "raw message keeps key order",
			input: json.RawMessage(`{"b":1,"a":{"d":true,"c":null}}`),
			want:  "{\n  \"b\": 1,\n  \"a\": {\n    \"d\": true,\n    \"c\": null\n  }\n}",
		},
		{
			name:  "html is not escaped",
			input: map[string]string{"html": "<b>&</b>"},
			want:  "{\n  \"html\": \"<b>&</b>\"\n}",
		},
		{
			name:  "scalar string",
			input: "hello",
			want:  `"hello"`,
		},
		{
			name:  "nil",
			input: nil,
			want:  "null",
		},
		{
			name:    "channel",
			input:   map[string]any{"ch": make(chan int)},
			wantErr: true,
		},
		{
			name:    "function",
			input:   func() {},
			wantErr: true,
		},
		{
			name:    "nan",
			input:   math.NaN(),
			wantErr: true,
		},
		{
			name:    "self-referencing map",
			input:   cyclic,
			wantErr: true,
		},
		{
			name:    "invalid raw message",
			input:   json.RawMessage(`{broken`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pretty(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReindent(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "object",
			input:  `{"location":"Paris","units":["c","f"]}`,
			want:   "{\n  \"location\": \"Paris\",\n  \"units\": [\n    \"c\",\n    \"f\"\n  ]\n}",
			wantOK: true,
		},
		{
			name:   "already indented",
			input:  "{\n    \"a\":   1\n}",
			want:   "{\n  \"a\": 1\n}",
			wantOK: true,
		},
		{
			name:   "number",
			input:  `42`,
			want:   `42`,
			wantOK: true,
		},
		{
			name:   "truncated object",
			input:  `{not json`,
			want:   `{not json`,
			wantOK: false,
		},
		{
			name:   "bare word",
			input:  `hello`,
			want:   `hello`,
			wantOK: false,
		},
		{
			name:   "empty",
			input:  ``,
			want:   ``,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Reindent(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReindent_RoundTrip(t *testing.T) {
	raw := `{"query":"bees","filters":{"price":{"max":20.5},"tags":["live","kits"]},"limit":3}`
	got, ok := Reindent(raw)
	require.True(t, ok)

	var want, have any
	require.NoError(t, json.Unmarshal([]byte(raw), &want))
	require.NoError(t, json.Unmarshal([]byte(got), &have))
	assert.Equal(t, want, have)
}
