// Package export renders outlines for downstream consumers: the
// canonical JSON file format, a markdown table of contents, and
// sanitized HTML for the web view.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/skagseth/synopsis/model"
)

// htmlPolicy strips anything beyond plain user-generated content. The
// policy is safe for concurrent use.
var htmlPolicy = bluemonday.UGCPolicy()

// WriteJSON writes the outline in its canonical file form: two-space
// indentation, non-ASCII characters literal, title before outline.
func WriteJSON(w io.Writer, o model.Outline) error {
	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// JSONFilename maps an input document path to its outline filename:
// "report.pdf" becomes "report_outline.json".
func JSONFilename(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_outline.json"
}

// MarkdownTOC renders the outline as a markdown table of contents, one
// list item per heading, nested by level.
func MarkdownTOC(o model.Outline) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", o.Title)
	if len(o.Headings) > 0 {
		sb.WriteByte('\n')
	}
	for _, h := range o.Headings {
		indent := strings.Repeat("  ", h.Level.Rank()-1)
		fmt.Fprintf(&sb, "%s- %s (page %d)\n", indent, h.Text, h.Page)
	}
	return sb.String()
}

// HTML renders the outline for embedding in a web page: the markdown
// table of contents converted to HTML and sanitized.
func HTML(o model.Outline) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(MarkdownTOC(o)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(htmlPolicy.SanitizeBytes(buf.Bytes())), nil
}
