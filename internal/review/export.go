// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
)

// Format selects a download format. Both formats carry the review text
// unchanged; they differ only in filename extension and MIME type.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q: use markdown or text", s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return ".md"
}

// MIMEType returns the Content-Type for the format.
func (f Format) MIMEType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

// Filename returns the download filename for a topic and format
// (e.g. "literature_review_quantum_computing.md").
func Filename(topic string, f Format) string {
	return "literature_review_" + Slug(topic) + f.Extension()
}

// Slug converts a topic to a filename-safe token: lowercased, with runs
// of non-alphanumeric characters collapsed to single underscores.
func Slug(topic string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// RenderHTML converts review Markdown to HTML for the web preview.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.String(), nil
}
