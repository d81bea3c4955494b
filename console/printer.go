package console

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alphadose/haxmap"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/fogfish/opts"
	"github.com/go-openapi/swag"
	"github.com/muesli/termenv"

	"github.com/casualjim/snippet/pkg/slogx"
	"github.com/casualjim/snippet/render"
)

// LeafFunc writes a single descriptor to w.
type LeafFunc func(w io.Writer, d render.Descriptor) error

// Printer writes a render.Transcript to a terminal.
type Printer struct {
	w        io.Writer
	noColor  bool
	markdown bool
	width    int

	glam   *glamour.TermRenderer
	leaves *haxmap.Map[render.Kind, LeafFunc]

	heading lipgloss.Style
	faint   lipgloss.Style
	role    *color.Color
	label   *color.Color
	tool    *color.Color
	warn    *color.Color
	failure *color.Color
}

var (
	// NoColor disables all ANSI styling.
	NoColor = opts.ForName[Printer, bool]("noColor")

	// Markdown renders prose text blocks as markdown.
	Markdown = opts.ForName[Printer, bool]("markdown")

	// Width is the column width used for dividers and markdown word wrapping.
	Width = opts.ForName[Printer, int]("width")
)

const defaultWidth = 80

// New creates a Printer writing to w.
func New(w io.Writer, options ...opts.Option[Printer]) (*Printer, error) {
	p := &Printer{
		w:      w,
		width:  defaultWidth,
		leaves: haxmap.New[render.Kind, LeafFunc](),
	}
	if err := opts.Apply(p, options); err != nil {
		return nil, err
	}
	if p.width <= 0 {
		p.width = defaultWidth
	}

	lg := lipgloss.NewRenderer(w)
	if p.noColor {
		lg.SetColorProfile(termenv.Ascii)
	}
	p.heading = lg.NewStyle().Bold(true).Underline(true)
	p.faint = lg.NewStyle().Faint(true)

	p.role = newColor(p.noColor, color.FgCyan, color.Bold)
	p.label = newColor(p.noColor, color.FgMagenta)
	p.tool = newColor(p.noColor, color.FgYellow)
	p.warn = newColor(p.noColor, color.FgYellow, color.Italic)
	p.failure = newColor(p.noColor, color.FgRed)

	if p.markdown {
		style := glamour.WithAutoStyle()
		if p.noColor {
			style = glamour.WithStandardStyle(styles.NoTTYStyle)
		}
		glam, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(p.width))
		if err != nil {
			return nil, fmt.Errorf("create markdown renderer: %w", err)
		}
		p.glam = glam
	}

	p.leaves.Set(render.KindText, p.text)
	p.leaves.Set(render.KindToolCall, p.toolCall)
	p.leaves.Set(render.KindToolResult, p.toolResult)
	p.leaves.Set(render.KindImage, p.image)
	p.leaves.Set(render.KindAudio, p.attachment)
	p.leaves.Set(render.KindFile, p.attachment)
	p.leaves.Set(render.KindFileError, p.fileError)
	p.leaves.Set(render.KindUnsupported, p.unsupported)
	p.leaves.Set(render.KindSerializationError, p.serializationError)
	return p, nil
}

func newColor(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// Register replaces the leaf renderer for a descriptor kind.
func (p *Printer) Register(kind render.Kind, fn LeafFunc) {
	p.leaves.Set(kind, fn)
}

// Print writes the transcript. Output is buffered and written to the
// underlying writer in one go.
func (p *Printer) Print(tr *render.Transcript) error {
	var buf strings.Builder
	for _, n := range tr.Nodes {
		if err := p.node(&buf, n); err != nil {
			return err
		}
	}
	_, err := io.WriteString(p.w, buf.String())
	return err
}

func (p *Printer) node(w io.Writer, n render.Node) error {
	switch v := n.(type) {
	case render.Heading:
		_, err := fmt.Fprintf(w, "%s\n\n", p.heading.Render(v.Text))
		return err
	case render.Divider:
		_, err := fmt.Fprintf(w, "%s\n\n", p.faint.Render(strings.Repeat("─", p.width)))
		return err
	case render.Section:
		for _, c := range v.Children {
			if err := p.node(w, c); err != nil {
				return err
			}
		}
		return nil
	case render.EmptyState:
		_, err := fmt.Fprintf(w, "%s\n", p.faint.Render(v.Message))
		return err
	case render.MessageNode:
		return p.message(w, v)
	}
	return fmt.Errorf("unknown transcript node %T", n)
}

func (p *Printer) message(w io.Writer, msg render.MessageNode) error {
	if msg.Role != "" {
		if _, err := fmt.Fprintf(w, "%s\n", p.role.Sprint(swag.ToGoName(msg.Role.String()))); err != nil {
			return err
		}
	}
	for _, b := range msg.Blocks {
		if b.IsEmpty() {
			continue
		}
		leaf, ok := p.leaves.Get(b.Descriptor.Kind())
		if !ok {
			slog.Warn("no leaf renderer registered", slogx.Stringer("kind", b.Descriptor.Kind()), slog.Int("block", b.Index))
			continue
		}
		if err := leaf(w, b.Descriptor); err != nil {
			return fmt.Errorf("render block %d of message %d: %w", b.Index, msg.Index, err)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// indent prefixes every line of s with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
