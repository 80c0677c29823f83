package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Note is a markdown document with optional YAML frontmatter.
type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into frontmatter and body. Content without a leading
// fence is all body. CRLF line endings are normalised.
func Parse(content string) (Note, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := content[len(fence)+1:]
	var raw, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	case rest == fence:
	default:
		idx := strings.Index(rest, "\n"+fence+"\n")
		if idx < 0 {
			if !strings.HasSuffix(rest, "\n"+fence) {
				return Note{}, fmt.Errorf("frontmatter: missing closing %q", fence)
			}
			idx = len(rest) - len(fence) - 1
			raw = rest[:idx]
		} else {
			raw = rest[:idx]
			body = rest[idx+len(fence)+2:]
		}
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return Note{}, fmt.Errorf("frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return Note{Meta: meta, Body: strings.TrimPrefix(body, "\n")}, nil
}

// Render writes the frontmatter (keys sorted by yaml.v3) followed by a blank
// line and the body.
func (n Note) Render() (string, error) {
	var buf bytes.Buffer
	if len(n.Meta) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		buf.WriteString(fence + "\n")
		if err := enc.Encode(n.Meta); err != nil {
			return "", fmt.Errorf("frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("frontmatter: %w", err)
		}
		buf.WriteString(fence + "\n\n")
	}
	buf.WriteString(n.Body)
	if !strings.HasSuffix(n.Body, "\n") {
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

// Block is a region of the body owned by the program, delimited by two
// marker lines. Text outside the markers belongs to the user.
type Block struct {
	Start string
	End   string
}

// Replace swaps the block's content in body, or appends the block after a
// blank line when body has none yet.
func (b Block) Replace(body, content string) string {
	block := b.Start + "\n" + strings.TrimRight(content, "\n") + "\n" + b.End
	start := strings.Index(body, b.Start)
	if start >= 0 {
		if end := strings.Index(body[start:], b.End); end >= 0 {
			return body[:start] + block + body[start+end+len(b.End):]
		}
	}
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// Content returns what is currently between the markers.
func (b Block) Content(body string) (string, bool) {
	start := strings.Index(body, b.Start)
	if start < 0 {
		return "", false
	}
	inner := body[start+len(b.Start):]
	end := strings.Index(inner, b.End)
	if end < 0 {
		return "", false
	}
	return strings.Trim(inner[:end], "\n"), true
}
