// Package render turns a generation result into terminal text, HTML, JSON
// or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/abdulachik/mesostic/internal/meso"
	"gopkg.in/yaml.v3"
)

// Format is an output format name.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, html, json or yaml)", s)
}

// Document is the serialized form of a result.
type Document struct {
	Status      string `json:"status" yaml:"status"`
	Message     string `json:"message" yaml:"message"`
	Spine       string `json:"spine" yaml:"spine"`
	OracleWords int    `json:"oracle_words" yaml:"oracle_words"`
	Lines       []Line `json:"lines" yaml:"lines"`
}

// Line is one serialized poem line.
type Line struct {
	Text    string `json:"text" yaml:"text"`
	Blank   bool   `json:"blank,omitempty" yaml:"blank,omitempty"`
	Letter  string `json:"letter,omitempty" yaml:"letter,omitempty"`
	Offset  int    `json:"offset" yaml:"offset"`
	Padding int    `json:"padding" yaml:"padding"`
}

// NewDocument converts a result into its serialized form. Line text is
// padded and carries no highlighting.
func NewDocument(res *meso.Result) Document {
	doc := Document{
		Status:      res.Status.String(),
		Message:     res.Message,
		Spine:       string(res.Spine),
		OracleWords: res.OracleWords,
		Lines:       make([]Line, 0, len(res.Lines)),
	}
	for _, ln := range res.Lines {
		doc.Lines = append(doc.Lines, Line{
			Text:    ln.Text,
			Blank:   ln.Blank,
			Letter:  ln.Letter,
			Offset:  ln.Offset,
			Padding: ln.Padding,
		})
	}
	return doc
}

// Write renders res to w in the given format.
func Write(w io.Writer, res *meso.Result, format Format, opts Options) error {
	var out []byte
	switch format {
	case FormatText, "":
		out = []byte(Text(res, opts))
	case FormatHTML:
		out = []byte(HTML(res))
	case FormatJSON:
		var err error
		out, err = JSON(res)
		if err != nil {
			return err
		}
	case FormatYAML:
		var err error
		out, err = YAML(res)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// HTML renders the message in a paragraph and the poem in a pre block with
// the spine letters in bold.
func HTML(res *meso.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s</p>\n<pre>\n", html.EscapeString(res.Message))
	for _, ln := range res.Lines {
		if ln.Blank {
			b.WriteString("\n")
			continue
		}
		b.WriteString(strings.Repeat(" ", ln.Padding))
		b.WriteString(html.EscapeString(ln.Before))
		b.WriteString(meso.HTMLBold(html.EscapeString(ln.Letter)))
		b.WriteString(html.EscapeString(ln.After))
		b.WriteString("\n")
	}
	b.WriteString("</pre>\n")
	return b.String()
}

// JSON renders the result as indented JSON.
func JSON(res *meso.Result) ([]byte, error) {
	out, err := json.MarshalIndent(NewDocument(res), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return append(out, '\n'), nil
}

// YAML renders the result as YAML.
func YAML(res *meso.Result) ([]byte, error) {
	out, err := yaml.Marshal(NewDocument(res))
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return out, nil
}

func compose(ln meso.Line, highlight meso.Highlighter) string {
	if ln.Blank {
		return ""
	}
	if ln.Letter == "" {
		return ln.Before
	}
	return strings.TrimRight(strings.Repeat(" ", ln.Padding)+ln.Before+highlight(ln.Letter)+ln.After, " ")
}
