// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review assembles literature-review documents: the
// deterministic fallback builder, export filenames and formats, and
// HTML rendering for the web preview.
package review

import (
	"fmt"
	"strings"

	"github.com/pdiddy/scholarsynth/pkg/types"
)

// maxFallbackSummary bounds per-paper summary length in the fallback review.
const maxFallbackSummary = 300

// Formatted builds the deterministic literature review used when the LLM
// is unavailable or returns unusable output. The structure mirrors the
// summarizer's target: introduction, numbered per-paper sections,
// conclusion, references.
func Formatted(topic string, papers []types.Paper) string {
	if len(papers) == 0 {
		return fmt.Sprintf("# Literature Review: %s\n\nNo papers found for this topic.\n", topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Literature Review: %s\n\n", topic)
	b.WriteString("## Introduction\n\n")
	fmt.Fprintf(&b,
		"This literature review examines recent research developments in the field of %s. "+
			"The following analysis is based on %d relevant papers retrieved from arXiv, "+
			"providing insights into current methodologies, key contributions, and emerging "+
			"trends in this domain.\n\n",
		topic, len(papers))
	b.WriteString("## Paper Analysis\n\n")

	for i, p := range papers {
		title := p.Title
		if title == "" {
			title = "Unknown Title"
		}
		pdfURL := p.PDFURL
		if pdfURL == "" {
			pdfURL = "#"
		}
		published := p.PublishedDate()
		if published == "" {
			published = "Unknown Date"
		}

		fmt.Fprintf(&b, "### %d. [%s](%s)\n\n", i+1, title, pdfURL)
		fmt.Fprintf(&b, "**Authors:** %s  \n", AuthorLine(p.Authors))
		fmt.Fprintf(&b, "**Published:** %s\n\n", published)
		fmt.Fprintf(&b, "**Summary:** %s\n\n", clipSummary(p.Summary))
		fmt.Fprintf(&b,
			"**Key Contributions:** This work contributes to the %s field by addressing "+
				"important research questions and presenting novel approaches to existing "+
				"challenges.\n\n",
			topic)
		b.WriteString("---\n\n")
	}

	b.WriteString("## Conclusion\n\n")
	fmt.Fprintf(&b,
		"The reviewed papers demonstrate significant progress in %s research. Key themes "+
			"across the literature include methodological innovations, practical applications, "+
			"and theoretical advancements. Future research directions may focus on addressing "+
			"current limitations and exploring new applications of these techniques.\n\n",
		topic)
	b.WriteString("## References\n\n")
	b.WriteString("All papers are available through arXiv and can be accessed via the provided links above.\n")

	return b.String()
}

// AuthorLine formats an author list for display: up to three names, then
// "et al.".
func AuthorLine(authors []string) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	if len(authors) > 3 {
		return strings.Join(authors[:3], ", ") + " et al."
	}
	return strings.Join(authors, ", ")
}

// clipSummary strips any trailing ellipsis carried over from search
// truncation and bounds the summary length for the fallback layout.
func clipSummary(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "...", ""))
	if s == "" {
		return "No summary available"
	}
	runes := []rune(s)
	if len(runes) <= maxFallbackSummary {
		return s
	}
	return string(runes[:maxFallbackSummary]) + "..."
}
