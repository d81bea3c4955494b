package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/casualjim/snippet/render"
)

const maxURLPreview = 48

func (p *Printer) text(w io.Writer, d render.Descriptor) error {
	t, ok := d.(render.Text)
	if !ok {
		return unexpected("text", d)
	}
	if t.Label != "" {
		if _, err := fmt.Fprintf(w, "  %s\n", p.label.Sprint(t.Label)); err != nil {
			return err
		}
	}

	content := t.Content
	if !t.Code && p.glam != nil {
		rendered, err := p.glam.Render(content)
		if err == nil {
			content = strings.Trim(rendered, "\n")
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", indent(content, 4))
	return err
}

func (p *Printer) toolCall(w io.Writer, d render.Descriptor) error {
	tc, ok := d.(render.ToolCall)
	if !ok {
		return unexpected("tool call", d)
	}
	if _, err := fmt.Fprintf(w, "  %s %s %s\n", p.label.Sprint("Tool Call"), p.tool.Sprint(tc.Name), p.faint.Render("("+tc.ID+")")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", indent(tc.Arguments, 4))
	return err
}

func (p *Printer) toolResult(w io.Writer, d render.Descriptor) error {
	tr, ok := d.(render.ToolResult)
	if !ok {
		return unexpected("tool result", d)
	}
	if _, err := fmt.Fprintf(w, "  %s %s %s\n", p.label.Sprint("Tool Result"), p.tool.Sprint(tr.Name), p.faint.Render("("+tr.ID+")")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", indent(tr.Result, 4))
	return err
}

func (p *Printer) image(w io.Writer, d render.Descriptor) error {
	img, ok := d.(render.Image)
	if !ok {
		return unexpected("image", d)
	}
	_, err := fmt.Fprintf(w, "  %s %s\n    %s\n",
		p.label.Sprint("Image"), img.DownloadName, p.faint.Render(preview(img.URL, describeData(img.URL, ""))))
	return err
}

// attachment renders both audio and generic file descriptors.
func (p *Printer) attachment(w io.Writer, d render.Descriptor) error {
	var label, data, mime, path string
	switch a := d.(type) {
	case render.Audio:
		label, data, mime, path = "Audio", a.FileData, a.MimeType, a.FilePath
	case render.File:
		label, data, mime, path = "File", a.FileData, a.MimeType, a.FilePath
	default:
		return unexpected("attachment", d)
	}
	_, err := fmt.Fprintf(w, "  %s %s\n    %s\n",
		p.label.Sprint(label), path, p.faint.Render(describeData(data, mime)))
	return err
}

func (p *Printer) fileError(w io.Writer, d render.Descriptor) error {
	fe, ok := d.(render.FileError)
	if !ok {
		return unexpected("file error", d)
	}
	_, err := fmt.Fprintf(w, "  %s\n", p.failure.Sprint(fe.Error))
	return err
}

func (p *Printer) unsupported(w io.Writer, d render.Descriptor) error {
	u, ok := d.(render.Unsupported)
	if !ok {
		return unexpected("unsupported", d)
	}
	_, err := fmt.Fprintf(w, "  %s\n", p.warn.Sprintf("Unsupported content: %s", u.Type))
	return err
}

func (p *Printer) serializationError(w io.Writer, d render.Descriptor) error {
	se, ok := d.(render.SerializationError)
	if !ok {
		return unexpected("serialization error", d)
	}
	_, err := fmt.Fprintf(w, "  %s\n", p.failure.Sprint(se.Message))
	return err
}

// unexpected reports a leaf bound to a descriptor kind it can't render.
func unexpected(leaf string, d render.Descriptor) error {
	return fmt.Errorf("%s leaf can't render %s descriptor %T", leaf, d.Kind(), d)
}

// describeData summarizes the payload of a data URL: its MIME type, the
// usual file extension for it and the decoded size. When the MIME type is
// unknown it is sniffed from the decoded bytes.
func describeData(raw, mime string) string {
	parsed, err := parseDataURL(raw)
	if err != nil {
		if mime == "" {
			return "unreadable data"
		}
		return mime
	}
	if mime == "" {
		mime = parsed.MediaType
	}

	var detected *mimetype.MIME
	if mime != "" {
		detected = mimetype.Lookup(mime)
	}
	if detected == nil && len(parsed.Data) > 0 {
		detected = mimetype.Detect(parsed.Data)
		if mime == "" {
			mime = detected.String()
		}
	}

	parts := []string{}
	if mime != "" {
		parts = append(parts, mime)
	}
	if detected != nil && detected.Extension() != "" {
		parts = append(parts, detected.Extension())
	}
	parts = append(parts, fmt.Sprintf("%d bytes", len(parsed.Data)))
	return strings.Join(parts, ", ")
}

func preview(url, summary string) string {
	if len(url) > maxURLPreview {
		url = url[:maxURLPreview] + "…"
	}
	return url + " (" + summary + ")"
}
