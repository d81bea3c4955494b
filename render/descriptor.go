package render

// Kind identifies which leaf renderer a Descriptor is meant for.
type Kind string

const (
	KindText               Kind = "text"
	KindToolCall           Kind = "tool_call"
	KindToolResult         Kind = "tool_result"
	KindImage              Kind = "image"
	KindAudio              Kind = "audio"
	KindFile               Kind = "file"
	KindFileError          Kind = "file_error"
	KindEmpty              Kind = "empty"
	KindUnsupported        Kind = "unsupported"
	KindSerializationError Kind = "serialization_error"
)

func (k Kind) String() string { return string(k) }

// Descriptor is the normalized, renderer agnostic form of one content block.
type Descriptor interface {
	Kind() Kind
	descriptor()
}

// Block labels used for the text descriptors.
const (
	LabelText                = "Text"
	LabelStructuredText      = "Text (Arguments)"
	LabelMissingFunctionText = "Text (Missing Function Config)"
	LabelRawText             = "Text (Raw)"
)

// FileErrorMessage is shown in place of a file that could not be retrieved.
const FileErrorMessage = "Failed to retrieve file"

// Text is a labelled piece of text. When Code is set the content is
// pre-formatted and belongs in a monospace container.
type Text struct {
	Label   string
	Content string
	Code    bool
}

func (Text) Kind() Kind  { return KindText }
func (Text) descriptor() {}

// ToolCall describes a tool invocation. Parsed reports whether Arguments
// holds re-indented JSON or the raw string as received.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
	Parsed    bool
}

func (ToolCall) Kind() Kind  { return KindToolCall }
func (ToolCall) descriptor() {}

// ToolResult describes the output of a tool invocation.
type ToolResult struct {
	ID     string
	Name   string
	Result string
}

func (ToolResult) Kind() Kind  { return KindToolResult }
func (ToolResult) descriptor() {}

// Image references an image attachment.
type Image struct {
	URL          string
	DownloadName string
}

func (Image) Kind() Kind  { return KindImage }
func (Image) descriptor() {}

// Audio references an audio attachment.
type Audio struct {
	FileData string
	MimeType string
	FilePath string
}

func (Audio) Kind() Kind  { return KindAudio }
func (Audio) descriptor() {}

// File references any other attachment.
type File struct {
	FileData string
	MimeType string
	FilePath string
}

func (File) Kind() Kind  { return KindFile }
func (File) descriptor() {}

// FileError is the placeholder for an attachment that could not be retrieved.
type FileError struct {
	Error string
}

func (FileError) Kind() Kind  { return KindFileError }
func (FileError) descriptor() {}

// Empty is produced for blocks that have no visible output.
// Type is the tag of the block that was dropped.
type Empty struct {
	Type string
}

func (Empty) Kind() Kind  { return KindEmpty }
func (Empty) descriptor() {}

// Unsupported is a visible placeholder for an unrecognized block type.
// It is only produced when the normalizer is configured with ShowUnsupported.
type Unsupported struct {
	Type string
}

func (Unsupported) Kind() Kind  { return KindUnsupported }
func (Unsupported) descriptor() {}

// SerializationError is shown in place of a system prompt that could not be serialized.
type SerializationError struct {
	Message string
}

func (SerializationError) Kind() Kind  { return KindSerializationError }
func (SerializationError) descriptor() {}

// Block is a descriptor together with its position in the owning message.
// Index is a stable rendering key, never an input to the content.
type Block struct {
	Index      int
	Descriptor Descriptor
}

// IsEmpty reports whether the block produces no visible output.
func (b Block) IsEmpty() bool {
	if b.Descriptor == nil {
		return true
	}
	return b.Descriptor.Kind() == KindEmpty
}
