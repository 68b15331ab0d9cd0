// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Message is a single pipeline emission attributed to an agent. The web
// UI streams these as they arrive; the final "summarizer" message carries
// the review text.
type Message struct {
	// Source names the agent that produced the message
	// (e.g. "researcher", "summarizer", "system").
	Source string `json:"source" yaml:"source"`

	// Content is the message body, Markdown for review text.
	Content string `json:"content" yaml:"content"`

	// CreatedAt is the emission time.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Review is a completed literature review with the papers it covers.
type Review struct {
	// ID is the server-assigned review identifier.
	ID string `json:"id" yaml:"id"`

	// Topic is the research topic the review was generated for.
	Topic string `json:"topic" yaml:"topic"`

	// Model is the LLM model identifier used for synthesis, or empty
	// when the deterministic fallback produced the text.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Content is the review text in Markdown. Download exports serve
	// these exact bytes regardless of format.
	Content string `json:"content" yaml:"content"`

	// Papers lists the arXiv papers the review is based on.
	Papers []Paper `json:"papers" yaml:"papers"`

	// CreatedAt is the generation time.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
