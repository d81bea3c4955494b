package render

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casualjim/snippet/pkg/messages"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		block messages.ContentBlock
		want  Descriptor
	}{
		{
			name:  "structured text",
			block: messages.StructuredText{Arguments: json.RawMessage(`{"topic":"bees","count":2}`)},
			want:  Text{Label: LabelStructuredText, Content: "{\n  \"topic\": \"bees\",\n  \"count\": 2\n}", Code: true},
		},
		{
			name:  "unstructured text",
			block: messages.UnstructuredText{Text: "  hello\nworld  "},
			want:  Text{Label: LabelText, Content: "  hello\nworld  "},
		},
		{
			name:  "missing function text",
			block: messages.MissingFunctionText{Value: "no function"},
			want:  Text{Label: LabelMissingFunctionText, Content: "no function"},
		},
		{
			name:  "raw text",
			block: messages.RawText{Value: `{"not":"parsed"}`},
			want:  Text{Label: LabelRawText, Content: `{"not":"parsed"}`, Code: true},
		},
		{
			name:  "tool call with json arguments",
			block: messages.ToolCall{ID: "call_1", Name: "get_weather", Arguments: `{"city":"Paris","days":3}`},
			want: ToolCall{
				ID:        "call_1",
				Name:      "get_weather",
				Arguments: "{\n  \"city\": \"Paris\",\n  \"days\": 3\n}",
				Parsed:    true,
			},
		},
		{
			name:  "tool call with malformed arguments",
			block: messages.ToolCall{ID: "call_2", Name: "get_weather", Arguments: `{not json`},
			want:  ToolCall{ID: "call_2", Name: "get_weather", Arguments: `{not json`},
		},
		{
			name:  "tool call with empty arguments",
			block: messages.ToolCall{ID: "call_3", Name: "noop"},
			want:  ToolCall{ID: "call_3", Name: "noop"},
		},
		{
			name:  "tool result is never parsed",
			block: messages.ToolResult{ID: "call_1", Name: "get_weather", Result: `{"temp":21}`},
			want:  ToolResult{ID: "call_1", Name: "get_weather", Result: `{"temp":21}`},
		},
		{
			name: "image file",
			block: messages.File{
				File:        messages.FileData{DataURL: "data:image/png;base64,iVBOR", MimeType: "image/png"},
				StoragePath: messages.StoragePath{Path: "observability/files/abc.png"},
			},
			want: Image{URL: "data:image/png;base64,iVBOR", DownloadName: "tensorzero_observability/files/abc.png"},
		},
		{
			name: "audio file",
			block: messages.File{
				File:        messages.FileData{DataURL: "data:audio/mpeg;base64,SUQz", MimeType: "audio/mpeg"},
				StoragePath: messages.StoragePath{Path: "clip.mp3"},
			},
			want: Audio{FileData: "data:audio/mpeg;base64,SUQz", MimeType: "audio/mpeg", FilePath: "clip.mp3"},
		},
		{
			name: "pdf file",
			block: messages.File{
				File:        messages.FileData{DataURL: "data:application/pdf;base64,JVBER", MimeType: "application/pdf"},
				StoragePath: messages.StoragePath{Path: "doc.pdf"},
			},
			want: File{FileData: "data:application/pdf;base64,JVBER", MimeType: "application/pdf", FilePath: "doc.pdf"},
		},
		{
			name: "file without mime type",
			block: messages.File{
				File:        messages.FileData{DataURL: "data:;base64,AAAA"},
				StoragePath: messages.StoragePath{Path: "blob"},
			},
			want: File{FileData: "data:;base64,AAAA", FilePath: "blob"},
		},
		{
			name:  "file error hides the cause",
			block: messages.FileError{Error: "s3: access denied"},
			want:  FileError{Error: FileErrorMessage},
		},
		{
			name:  "unknown type",
			block: messages.UnknownBlock{Type: "unknown_variant"},
			want:  Empty{Type: "unknown_variant"},
		},
		{
			name:  "nil block",
			block: nil,
			want:  Empty{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.block, 3)
			assert.Equal(t, 3, got.Index)
			assert.Equal(t, tt.want, got.Descriptor)
		})
	}
}

func TestNormalize_IndexDoesNotAffectContent(t *testing.T) {
	block := messages.ToolCall{ID: "1", Name: "f", Arguments: `{"a":[1,2]}`}
	first := Normalize(block, 0)
	second := Normalize(block, 42)
	assert.Equal(t, first.Descriptor, second.Descriptor)
	assert.NotEqual(t, first.Index, second.Index)
}

func TestNormalize_IdentityLaw(t *testing.T) {
	inputs := []string{"", "plain", "  padded  ", "{\"looks\":\"like json\"}", "multi\nline\n", "<b>html</b>"}
	for _, in := range inputs {
		text := Normalize(messages.UnstructuredText{Text: in}, 0).Descriptor.(Text)
		assert.Equal(t, in, text.Content)

		missing := Normalize(messages.MissingFunctionText{Value: in}, 0).Descriptor.(Text)
		assert.Equal(t, in, missing.Content)

		result := Normalize(messages.ToolResult{ID: "1", Name: "f", Result: in}, 0).Descriptor.(ToolResult)
		assert.Equal(t, in, result.Result)
	}
}

func TestNormalize_StructuredTextRoundTrip(t *testing.T) {
	values := []any{
		map[string]any{"name": "snippet", "tags": []any{"render", "cli"}, "nested": map[string]any{"ok": true}},
		[]any{float64(1), "two", nil},
		"just a string",
		float64(7),
	}
	for _, v := range values {
		text := Normalize(messages.StructuredText{Arguments: v}, 0).Descriptor.(Text)
		var back any
		require.NoError(t, json.Unmarshal([]byte(text.Content), &back))
		assert.Equal(t, v, back)
	}
}

func TestNormalize_ToolCallRoundTrip(t *testing.T) {
	raw := `{"query":"bees","filters":{"max_price":20},"limit":[1,2,3]}`
	tc := Normalize(messages.ToolCall{ID: "1", Name: "search", Arguments: raw}, 0).Descriptor.(ToolCall)
	require.True(t, tc.Parsed)

	var want, got any
	require.NoError(t, json.Unmarshal([]byte(raw), &want))
	require.NoError(t, json.Unmarshal([]byte(tc.Arguments), &got))
	assert.Equal(t, want, got)
}

func TestNormalize_StructuredTextUnserializable(t *testing.T) {
	text := Normalize(messages.StructuredText{Arguments: map[string]any{"ch": make(chan int)}}, 0).Descriptor.(Text)
	assert.Equal(t, LabelStructuredText, text.Label)
	assert.Contains(t, text.Content, "Error serializing arguments: ")
}

func TestNormalizer_Options(t *testing.T) {
	n := NewNormalizer(DownloadPrefix("dl_"), ShowUnsupported(true))

	img := n.Normalize(messages.File{
		File:        messages.FileData{DataURL: "data:image/jpeg;base64,AAAA", MimeType: "image/jpeg"},
		StoragePath: messages.StoragePath{Path: "cat.jpg"},
	}, 0)
	assert.Equal(t, Image{URL: "data:image/jpeg;base64,AAAA", DownloadName: "dl_cat.jpg"}, img.Descriptor)

	unknown := n.Normalize(messages.UnknownBlock{Type: "thought"}, 1)
	assert.Equal(t, Unsupported{Type: "thought"}, unknown.Descriptor)
	assert.False(t, unknown.IsEmpty())
}

func TestBlock_IsEmpty(t *testing.T) {
	assert.True(t, Block{}.IsEmpty())
	assert.True(t, Block{Descriptor: Empty{Type: "x"}}.IsEmpty())
	assert.False(t, Block{Descriptor: Text{Content: ""}}.IsEmpty())
	assert.False(t, Block{Descriptor: FileError{Error: FileErrorMessage}}.IsEmpty())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "tool_call", ToolCall{}.Kind().String())
	assert.Equal(t, KindSerializationError, SerializationError{}.Kind())
}
