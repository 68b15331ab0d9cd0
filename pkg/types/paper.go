// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholarsynth
// review pipeline: papers returned by arXiv, pipeline messages, generated
// reviews, and per-stage configuration.
package types

import "time"

// Paper holds the metadata for a single arXiv paper as consumed by the
// review pipeline and the summarizer prompt.
type Paper struct {
	// ArxivID is the versionless arXiv identifier (e.g. "2301.07041").
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title as returned by arXiv.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the preprint publication date.
	Published time.Time `json:"published" yaml:"published"`

	// Summary is the abstract, whitespace-collapsed and truncated for
	// prompt use.
	Summary string `json:"summary" yaml:"summary"`

	// PDFURL is the direct link to the paper PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// RelevanceScore is a value between 0.0 and 1.0 derived from the
	// result's position in arXiv's relevance ordering.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`
}

// PublishedDate formats the publication date for display, or returns an
// empty string when the date is unknown.
func (p Paper) PublishedDate() string {
	if p.Published.IsZero() {
		return ""
	}
	return p.Published.Format("2006-01-02")
}
