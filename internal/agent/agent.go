// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent runs the two-agent review pipeline: a researcher that
// fetches papers from arXiv and a summarizer that synthesizes the
// literature review. Agents take turns in a fixed order; each turn
// appends one message to the stream.
package agent

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Definition holds the identity of one agent: its name as it appears in
// message attribution and the system prompt sent with its LLM calls.
type Definition struct {
	Name         string `yaml:"name"`
	SystemPrompt string `yaml:"system_prompt"`
}

// Definitions groups the pipeline's agents in turn order.
type Definitions struct {
	Researcher Definition `yaml:"researcher"`
	Summarizer Definition `yaml:"summarizer"`
}

// DefaultDefinitions returns the built-in agent identities.
func DefaultDefinitions() Definitions {
	return Definitions{
		Researcher: Definition{
			Name: "researcher",
			SystemPrompt: "You are a research assistant. When given a topic, use the get_papers " +
				"tool to fetch relevant papers from arXiv. After fetching the papers, return them " +
				"as a properly formatted JSON array containing title, authors, published date, " +
				"summary, and pdf_url for each paper. Always use the get_papers tool first, then " +
				"format the response.",
		},
		Summarizer: Definition{
			Name: "summarizer",
			SystemPrompt: "You are an expert academic researcher who creates literature reviews. " +
				"When given a JSON array of papers, create a comprehensive markdown literature review with:\n" +
				"1. A brief introduction (2-3 sentences) about the research topic\n" +
				"2. For each paper, create a section with:\n" +
				"   - Title as a markdown link to the PDF\n" +
				"   - Authors and publication date\n" +
				"   - Key problem addressed\n" +
				"   - Main contributions and findings\n" +
				"3. A conclusion summarizing key themes and future research directions\n\n" +
				"Make it professional and academic in tone.",
		},
	}
}

// LoadDefinitions reads agent definitions from a YAML file, filling any
// missing fields from the defaults. An empty path returns the defaults.
func LoadDefinitions(path string) (Definitions, error) {
	defs := DefaultDefinitions()
	if path == "" {
		return defs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Definitions{}, fmt.Errorf("reading agents file: %w", err)
	}

	var loaded Definitions
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Definitions{}, fmt.Errorf("parsing agents file: %w", err)
	}

	merge(&defs.Researcher, loaded.Researcher)
	merge(&defs.Summarizer, loaded.Summarizer)
	return defs, nil
}

func merge(dst *Definition, src Definition) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.SystemPrompt != "" {
		dst.SystemPrompt = src.SystemPrompt
	}
}
