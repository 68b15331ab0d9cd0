// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"strings"
	"unicode"

	"github.com/pdiddy/scholarsynth/pkg/types"
)

// deduplicate merges papers that share an arXiv ID or normalized title.
// arXiv occasionally returns the same work under cross-listed categories.
func deduplicate(papers []types.Paper) ([]types.Paper, int) {
	seen := make(map[string]int) // dedup key → index in deduped
	var deduped []types.Paper
	removed := 0

	for _, p := range papers {
		idKey := ""
		if p.ArxivID != "" {
			idKey = "id:" + p.ArxivID
		}
		titleKey := "title:" + normalizeTitle(p.Title)

		if idx, ok := seen[idKey]; ok && idKey != "" {
			mergeInto(&deduped[idx], p)
			removed++
			continue
		}
		if idx, ok := seen[titleKey]; ok && titleKey != "title:" {
			mergeInto(&deduped[idx], p)
			removed++
			continue
		}

		idx := len(deduped)
		deduped = append(deduped, p)
		if idKey != "" {
			seen[idKey] = idx
		}
		if titleKey != "title:" {
			seen[titleKey] = idx
		}
	}
	return deduped, removed
}

// mergeInto fills empty fields of dst from src and keeps the higher score.
func mergeInto(dst *types.Paper, src types.Paper) {
	if dst.Title == "" && src.Title != "" {
		dst.Title = src.Title
	}
	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = src.Authors
	}
	if dst.Summary == "" && src.Summary != "" {
		dst.Summary = src.Summary
	}
	if dst.PDFURL == "" && src.PDFURL != "" {
		dst.PDFURL = src.PDFURL
	}
	if dst.Published.IsZero() && !src.Published.IsZero() {
		dst.Published = src.Published
	}
	if src.RelevanceScore > dst.RelevanceScore {
		dst.RelevanceScore = src.RelevanceScore
	}
}

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
