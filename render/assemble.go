package render

import (
	"log/slog"

	"github.com/casualjim/snippet/pkg/messages"
	"github.com/casualjim/snippet/pkg/slogx"
	"github.com/fogfish/opts"
)

// Assembler builds a Transcript from a system prompt and a list of messages.
type Assembler struct {
	emptyMessage      string
	normalizerOptions []opts.Option[Normalizer]
	normalizer        *Normalizer
}

var (
	// EmptyMessage overrides the message shown when there are no input messages.
	EmptyMessage = opts.ForName[Assembler, string]("emptyMessage")
)

// WithNormalizer configures the normalizer used for every content block.
func WithNormalizer(options ...opts.Option[Normalizer]) opts.Option[Assembler] {
	return opts.Type[Assembler](func(a *Assembler) error {
		a.normalizerOptions = append(a.normalizerOptions, options...)
		return nil
	})
}

// NewAssembler creates an Assembler with the provided options.
func NewAssembler(options ...opts.Option[Assembler]) *Assembler {
	a := &Assembler{
		emptyMessage: DefaultEmptyMessage,
	}
	if err := opts.Apply(a, options); err != nil {
		panic(err)
	}
	a.normalizer = NewNormalizer(a.normalizerOptions...)
	return a
}

var defaultAssembler = NewAssembler()

// Assemble assembles a transcript with the default assembler.
func Assemble(system messages.System, msgs []messages.Message) *Transcript {
	return defaultAssembler.Assemble(system, msgs)
}

// Assemble lays out the system prompt, when present, followed by every message
// in input order. Blocks keep their position in the message even when they
// produce no visible output. Assemble never fails.
func (a *Assembler) Assemble(system messages.System, msgs []messages.Message) *Transcript {
	tr := &Transcript{}

	if !system.IsZero() {
		result := SerializeSystem(system)
		if result.Err != nil {
			slog.Warn("failed to serialize system prompt", slogx.Error(result.Err))
		}
		tr.Nodes = append(tr.Nodes,
			Heading{Text: HeadingSystem},
			Section{Children: []Node{
				MessageNode{Blocks: []Block{{Index: 0, Descriptor: result.Descriptor()}}},
			}},
			Divider{},
		)
	}

	if len(msgs) == 0 {
		tr.Nodes = append(tr.Nodes, Section{Children: []Node{EmptyState{Message: a.emptyMessage}}})
		return tr
	}

	section := Section{Children: make([]Node, 0, len(msgs))}
	for idx, msg := range msgs {
		section.Children = append(section.Children, a.assembleMessage(idx, msg))
	}
	tr.Nodes = append(tr.Nodes, Heading{Text: HeadingMessages}, section)
	return tr
}

func (a *Assembler) assembleMessage(index int, msg messages.Message) MessageNode {
	node := MessageNode{
		Index:  index,
		Role:   msg.Role,
		Blocks: make([]Block, 0, len(msg.Content)),
	}
	for blockIdx, block := range msg.Content {
		b := a.normalizer.Normalize(block, blockIdx)
		switch d := b.Descriptor.(type) {
		case Empty:
			slog.Debug("dropping content block",
				slogx.BlockType(d.Type), slog.Int("message", index), slog.Int("block", blockIdx))
		case ToolCall:
			if !d.Parsed {
				slog.Debug("tool call arguments are not valid json, showing them raw",
					slog.String("tool", d.Name), slog.Int("message", index), slog.Int("block", blockIdx))
			}
		}
		node.Blocks = append(node.Blocks, b)
	}
	return node
}
