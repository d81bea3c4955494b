package messages

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var jsonNull = []byte(`null`)

// Block type tags as they appear in the `type` field of a serialized content block.
const (
	TypeStructuredText      = "structured_text"
	TypeUnstructuredText    = "unstructured_text"
	TypeMissingFunctionText = "missing_function_text"
	TypeRawText             = "raw_text"
	TypeToolCall            = "tool_call"
	TypeToolResult          = "tool_result"
	TypeFile                = "file"
	TypeFileError           = "file_error"
)

// ContentBlock is an interface that marks structs as valid content blocks.
// Implementations include StructuredText, UnstructuredText, MissingFunctionText,
// RawText, ToolCall, ToolResult, File, FileError and UnknownBlock.
type ContentBlock interface {
	contentBlock()
	// BlockType returns the `type` tag of the block.
	BlockType() string
}

// StructuredText represents text that was sent as structured template arguments.
type StructuredText struct {
	Arguments any      `json:"arguments"` // Arbitrary structured value, json.RawMessage when decoded
	_         struct{} // require keyed usage
}

func (StructuredText) contentBlock()       {}
func (StructuredText) BlockType() string { return TypeStructuredText }

var stJSON = []byte(`{"type":"structured_text"}`)

// MarshalJSON implements json.Marshaler interface for StructuredText.
func (s StructuredText) MarshalJSON() ([]byte, error) {
	args, err := json.Marshal(s.Arguments)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes(stJSON, "arguments", args)
}

// UnmarshalJSON implements json.Unmarshaler interface for StructuredText.
// The arguments are kept as raw JSON so their key order survives.
func (s *StructuredText) UnmarshalJSON(input []byte) error {
	args := gjson.GetBytes(input, "arguments")
	if !args.Exists() {
		return errors.New("missing required field 'arguments'")
	}
	s.Arguments = json.RawMessage(args.Raw)
	return nil
}

// UnstructuredText represents plain text content.
type UnstructuredText struct {
	Text string   `json:"text"`
	_    struct{} // require keyed usage
}

func (UnstructuredText) contentBlock()       {}
func (UnstructuredText) BlockType() string { return TypeUnstructuredText }

var utJSON = []byte(`{"type":"unstructured_text"}`)

// MarshalJSON implements json.Marshaler interface for UnstructuredText.
func (t UnstructuredText) MarshalJSON() ([]byte, error) {
	return sjson.SetBytes(utJSON, "text", t.Text)
}

// UnmarshalJSON implements json.Unmarshaler interface for UnstructuredText.
func (t *UnstructuredText) UnmarshalJSON(input []byte) error {
	text := gjson.GetBytes(input, "text")
	if !text.Exists() {
		return errors.New("missing required field 'text'")
	}
	t.Text = text.String()
	return nil
}

// MissingFunctionText is text for which no function config could be found,
// so it could not be interpreted with a template.
type MissingFunctionText struct {
	Value string   `json:"value"`
	_     struct{} // require keyed usage
}

func (MissingFunctionText) contentBlock()       {}
func (MissingFunctionText) BlockType() string { return TypeMissingFunctionText }

var mftJSON = []byte(`{"type":"missing_function_text"}`)

func (t MissingFunctionText) MarshalJSON() ([]byte, error) {
	return sjson.SetBytes(mftJSON, "value", t.Value)
}

func (t *MissingFunctionText) UnmarshalJSON(input []byte) error {
	value := gjson.GetBytes(input, "value")
	if !value.Exists() {
		return errors.New("missing required field 'value'")
	}
	t.Value = value.String()
	return nil
}

// RawText is text that was passed through to the model without templating.
type RawText struct {
	Value string   `json:"value"`
	_     struct{} // require keyed usage
}

func (RawText) contentBlock()       {}
func (RawText) BlockType() string { return TypeRawText }

var rtJSON = []byte(`{"type":"raw_text"}`)

func (t RawText) MarshalJSON() ([]byte, error) {
	return sjson.SetBytes(rtJSON, "value", t.Value)
}

func (t *RawText) UnmarshalJSON(input []byte) error {
	value := gjson.GetBytes(input, "value")
	if !value.Exists() {
		return errors.New("missing required field 'value'")
	}
	t.Value = value.String()
	return nil
}

// ToolCall represents a tool invocation requested by the model.
// Arguments is expected to hold serialized JSON but nothing guarantees it does.
type ToolCall struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Arguments string   `json:"arguments"`
	_         struct{} // require keyed usage
}

func (ToolCall) contentBlock()       {}
func (ToolCall) BlockType() string { return TypeToolCall }

var tcJSON = []byte(`{"type":"tool_call"}`)

// MarshalJSON implements json.Marshaler interface for ToolCall.
func (t ToolCall) MarshalJSON() ([]byte, error) {
	return setStrings(tcJSON, "id", t.ID, "name", t.Name, "arguments", t.Arguments)
}

// UnmarshalJSON implements json.Unmarshaler interface for ToolCall.
// A missing or null arguments field decodes to the empty string.
func (t *ToolCall) UnmarshalJSON(input []byte) error {
	res := gjson.GetManyBytes(input, "id", "name", "arguments")
	if !res[0].Exists() {
		return errors.New("missing required field 'id'")
	}
	if !res[1].Exists() {
		return errors.New("missing required field 'name'")
	}
	t.ID = res[0].String()
	t.Name = res[1].String()
	t.Arguments = res[2].String()
	return nil
}

// ToolResult represents the output of a tool invocation fed back to the model.
type ToolResult struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Result string   `json:"result"`
	_      struct{} // require keyed usage
}

func (ToolResult) contentBlock()       {}
func (ToolResult) BlockType() string { return TypeToolResult }

var trJSON = []byte(`{"type":"tool_result"}`)

// MarshalJSON implements json.Marshaler interface for ToolResult.
func (t ToolResult) MarshalJSON() ([]byte, error) {
	return setStrings(trJSON, "id", t.ID, "name", t.Name, "result", t.Result)
}

// UnmarshalJSON implements json.Unmarshaler interface for ToolResult.
func (t *ToolResult) UnmarshalJSON(input []byte) error {
	res := gjson.GetManyBytes(input, "id", "name", "result")
	if !res[0].Exists() {
		return errors.New("missing required field 'id'")
	}
	if !res[2].Exists() {
		return errors.New("missing required field 'result'")
	}
	t.ID = res[0].String()
	t.Name = res[1].String()
	t.Result = res[2].String()
	return nil
}

// FileData is a resolved file: its content encoded as a data URL plus its MIME type.
type FileData struct {
	DataURL  string `json:"dataUrl"`
	MimeType string `json:"mime_type"`
}

// StoragePath is where the file lives in object storage.
type StoragePath struct {
	Path string `json:"path"`
}

// File represents a file attachment (image, audio or anything else).
type File struct {
	File        FileData    `json:"file"`
	StoragePath StoragePath `json:"storage_path"`
	_           struct{}    // require keyed usage
}

func (File) contentBlock()       {}
func (File) BlockType() string { return TypeFile }

var fJSON = []byte(`{"type":"file"}`)

// MarshalJSON implements json.Marshaler interface for File.
func (f File) MarshalJSON() ([]byte, error) {
	return setStrings(fJSON,
		"file.dataUrl", f.File.DataURL,
		"file.mime_type", f.File.MimeType,
		"storage_path.path", f.StoragePath.Path,
	)
}

// UnmarshalJSON implements json.Unmarshaler interface for File.
func (f *File) UnmarshalJSON(input []byte) error {
	file := gjson.GetBytes(input, "file")
	if !file.IsObject() {
		return errors.New("missing required object 'file'")
	}
	f.File = FileData{
		DataURL:  file.Get("dataUrl").String(),
		MimeType: file.Get("mime_type").String(),
	}
	f.StoragePath = StoragePath{Path: gjson.GetBytes(input, "storage_path.path").String()}
	return nil
}

// FileError marks a file that could not be retrieved from storage.
// Error carries the retrieval failure when upstream provides one.
type FileError struct {
	Error string   `json:"error,omitempty"`
	_     struct{} // require keyed usage
}

func (FileError) contentBlock()       {}
func (FileError) BlockType() string { return TypeFileError }

var feJSON = []byte(`{"type":"file_error"}`)

func (f FileError) MarshalJSON() ([]byte, error) {
	if f.Error == "" {
		return feJSON, nil
	}
	return sjson.SetBytes(feJSON, "error", f.Error)
}

func (f *FileError) UnmarshalJSON(input []byte) error {
	f.Error = gjson.GetBytes(input, "error").String()
	return nil
}

// UnknownBlock holds a content block whose type tag is not recognized.
// The raw JSON is retained so it can be written back unchanged.
type UnknownBlock struct {
	Type string
	Raw  json.RawMessage
	_    struct{} // require keyed usage
}

func (UnknownBlock) contentBlock()         {}
func (u UnknownBlock) BlockType() string { return u.Type }

// MarshalJSON implements json.Marshaler interface for UnknownBlock.
func (u UnknownBlock) MarshalJSON() ([]byte, error) {
	if len(u.Raw) > 0 {
		return u.Raw, nil
	}
	return sjson.SetBytes([]byte(`{}`), "type", u.Type)
}

// Content is the ordered sequence of blocks making up a message.
type Content []ContentBlock

// MarshalJSON implements json.Marshaler interface for Content.
func (c Content) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte(`[]`), nil
	}
	return json.Marshal([]ContentBlock(c))
}

// UnmarshalJSON implements json.Unmarshaler interface for Content.
// Blocks with an unrecognized type decode to UnknownBlock instead of failing.
func (c *Content) UnmarshalJSON(input []byte) error {
	if !gjson.ValidBytes(input) {
		return fmt.Errorf("invalid json: %s", input)
	}
	jv := gjson.ParseBytes(input)
	if jv.Type == gjson.Null {
		*c = nil
		return nil
	}
	if !jv.IsArray() {
		return errors.New("content must be an array of blocks")
	}
	aj := jv.Array()
	blocks := make(Content, len(aj))
	for idx, ajv := range aj {
		block, err := DecodeBlock([]byte(ajv.Raw))
		if err != nil {
			return fmt.Errorf("invalid content block at %d: %w", idx, err)
		}
		blocks[idx] = block
	}
	*c = blocks
	return nil
}

// DecodeBlock decodes a single content block, dispatching on its `type` tag.
func DecodeBlock(input []byte) (ContentBlock, error) {
	jv := gjson.ParseBytes(input)
	if !jv.IsObject() {
		return nil, errors.New("content block must be an object")
	}
	tpe := jv.Get("type").String()

	var block interface {
		ContentBlock
		json.Unmarshaler
	}
	switch tpe {
	case TypeStructuredText:
		block = &StructuredText{}
	case TypeUnstructuredText:
		block = &UnstructuredText{}
	case TypeMissingFunctionText:
		block = &MissingFunctionText{}
	case TypeRawText:
		block = &RawText{}
	case TypeToolCall:
		block = &ToolCall{}
	case TypeToolResult:
		block = &ToolResult{}
	case TypeFile:
		block = &File{}
	case TypeFileError:
		block = &FileError{}
	default:
		return UnknownBlock{Type: tpe, Raw: json.RawMessage(jv.Raw)}, nil
	}
	if err := block.UnmarshalJSON(input); err != nil {
		return nil, fmt.Errorf("%s: %w", tpe, err)
	}
	return deref(block), nil
}

// deref turns the pointer used for decoding back into the value variant.
func deref(block ContentBlock) ContentBlock {
	switch b := block.(type) {
	case *StructuredText:
		return *b
	case *UnstructuredText:
		return *b
	case *MissingFunctionText:
		return *b
	case *RawText:
		return *b
	case *ToolCall:
		return *b
	case *ToolResult:
		return *b
	case *File:
		return *b
	case *FileError:
		return *b
	}
	return block
}

func setStrings(base []byte, kv ...string) ([]byte, error) {
	out := base
	var err error
	for i := 0; i+1 < len(kv); i += 2 {
		out, err = sjson.SetBytes(out, kv[i], kv[i+1])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
