package render

import (
	"strings"

	"github.com/casualjim/snippet/pkg/jsonx"
	"github.com/casualjim/snippet/pkg/messages"
	"github.com/fogfish/opts"
)

// DefaultDownloadPrefix namespaces the download name of image attachments.
const DefaultDownloadPrefix = "tensorzero_"

// Normalizer turns content blocks into descriptors.
// The zero value is not usable, create one with NewNormalizer.
type Normalizer struct {
	downloadPrefix  string
	showUnsupported bool
}

var (
	// DownloadPrefix sets the prefix prepended to the storage path of an image
	// to build its download name.
	DownloadPrefix = opts.ForName[Normalizer, string]("downloadPrefix")

	// ShowUnsupported makes unrecognized block types produce a visible
	// Unsupported placeholder instead of an Empty descriptor.
	ShowUnsupported = opts.ForName[Normalizer, bool]("showUnsupported")
)

// NewNormalizer creates a Normalizer with the provided options.
func NewNormalizer(options ...opts.Option[Normalizer]) *Normalizer {
	n := &Normalizer{
		downloadPrefix: DefaultDownloadPrefix,
	}
	if err := opts.Apply(n, options); err != nil {
		panic(err)
	}
	return n
}

var defaultNormalizer = NewNormalizer()

// Normalize normalizes a block with the default normalizer.
func Normalize(block messages.ContentBlock, index int) Block {
	return defaultNormalizer.Normalize(block, index)
}

// Normalize produces the descriptor for a single content block at position
// index of its message. It never fails: payloads that can't be interpreted
// degrade to their raw form and unrecognized blocks produce Empty.
func (n *Normalizer) Normalize(block messages.ContentBlock, index int) Block {
	return Block{Index: index, Descriptor: n.describe(block)}
}

func (n *Normalizer) describe(block messages.ContentBlock) Descriptor {
	switch b := block.(type) {
	case messages.StructuredText:
		content, err := jsonx.Pretty(b.Arguments)
		if err != nil {
			content = "Error serializing arguments: " + err.Error()
		}
		return Text{Label: LabelStructuredText, Content: content, Code: true}

	case messages.UnstructuredText:
		return Text{Label: LabelText, Content: b.Text}

	case messages.MissingFunctionText:
		return Text{Label: LabelMissingFunctionText, Content: b.Value}

	case messages.RawText:
		return Text{Label: LabelRawText, Content: b.Value, Code: true}

	case messages.ToolCall:
		args, parsed := jsonx.Reindent(b.Arguments)
		return ToolCall{ID: b.ID, Name: b.Name, Arguments: args, Parsed: parsed}

	case messages.ToolResult:
		return ToolResult{ID: b.ID, Name: b.Name, Result: b.Result}

	case messages.File:
		return n.describeFile(b)

	case messages.FileError:
		return FileError{Error: FileErrorMessage}

	case nil:
		return Empty{}
	}

	if n.showUnsupported {
		return Unsupported{Type: block.BlockType()}
	}
	return Empty{Type: block.BlockType()}
}

func (n *Normalizer) describeFile(b messages.File) Descriptor {
	mime := b.File.MimeType
	switch {
	case strings.HasPrefix(mime, "image/"):
		return Image{
			URL:          b.File.DataURL,
			DownloadName: n.downloadPrefix + b.StoragePath.Path,
		}
	case strings.HasPrefix(mime, "audio/"):
		return Audio{
			FileData: b.File.DataURL,
			MimeType: mime,
			FilePath: b.StoragePath.Path,
		}
	default:
		return File{
			FileData: b.File.DataURL,
			MimeType: mime,
			FilePath: b.StoragePath.Path,
		}
	}
}
