package render

import "github.com/casualjim/snippet/pkg/messages"

// Section headings and the empty state message.
const (
	HeadingSystem       = "System"
	HeadingMessages     = "Messages"
	DefaultEmptyMessage = "No input messages found"
)

// Node is an element of a rendered transcript. Each node type maps onto one
// layout primitive of the presentation layer.
type Node interface {
	node()
}

// Heading titles a section of the transcript.
type Heading struct {
	Text string
}

// Divider separates two sections.
type Divider struct{}

// Section groups the content that follows a heading.
type Section struct {
	Children []Node
}

// MessageNode groups the blocks of one message. The system prompt is rendered
// as a MessageNode without a role.
type MessageNode struct {
	Index  int
	Role   messages.Role
	Blocks []Block
}

// EmptyState is shown instead of the message list when there are no messages.
type EmptyState struct {
	Message string
}

func (Heading) node()     {}
func (Divider) node()     {}
func (Section) node()     {}
func (MessageNode) node() {}
func (EmptyState) node()  {}

// Transcript is the assembled tree handed to the layout and leaf renderers.
type Transcript struct {
	Nodes []Node
}

// System returns the system prompt group, if the transcript has one.
func (t *Transcript) System() (MessageNode, bool) {
	for i, n := range t.Nodes {
		h, ok := n.(Heading)
		if !ok || h.Text != HeadingSystem || i+1 >= len(t.Nodes) {
			continue
		}
		if s, ok := t.Nodes[i+1].(Section); ok && len(s.Children) > 0 {
			msg, ok := s.Children[0].(MessageNode)
			return msg, ok
		}
	}
	return MessageNode{}, false
}

// Messages returns the message groups in render order, the system prompt excluded.
func (t *Transcript) Messages() []MessageNode {
	var result []MessageNode
	var inMessages bool
	for _, n := range t.Nodes {
		switch v := n.(type) {
		case Heading:
			inMessages = v.Text == HeadingMessages
		case Section:
			if !inMessages {
				continue
			}
			for _, c := range v.Children {
				if msg, ok := c.(MessageNode); ok {
					result = append(result, msg)
				}
			}
		}
	}
	return result
}

// IsEmpty reports whether the transcript shows the empty state.
func (t *Transcript) IsEmpty() bool {
	for _, n := range t.Nodes {
		if s, ok := n.(Section); ok {
			for _, c := range s.Children {
				if _, ok := c.(EmptyState); ok {
					return true
				}
			}
		}
	}
	return false
}
