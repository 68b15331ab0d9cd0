// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/pdiddy/scholarsynth/internal/groq"
	"github.com/pdiddy/scholarsynth/internal/review"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

// ChatClient abstracts the hosted inference API so tests can supply a mock.
type ChatClient interface {
	Model() string
	Complete(ctx context.Context, messages []groq.ChatMessage) (string, error)
}

// PaperFetcher is the researcher's get_papers tool: it fetches papers
// from arXiv for a topic.
type PaperFetcher interface {
	Search(ctx context.Context, topic string, maxResults int) ([]types.Paper, error)
}

// minReviewLength is the shortest LLM reply accepted as a review; shorter
// replies trigger the deterministic fallback.
const minReviewLength = 100

// summarizerPromptTmpl is the user prompt sent to the summarizer's LLM call.
var summarizerPromptTmpl = template.Must(template.New("summarizer").Parse(`Create a comprehensive academic literature review for the topic '{{.Topic}}'.

Here are the papers to analyze:
{{.PapersJSON}}

Please create a professional literature review with:
1. An introduction explaining the importance of {{.Topic}}
2. For each paper: title (as link), authors, key problem, main contributions, and methodology
3. A conclusion highlighting key themes and future directions

Format it in clean markdown.`))

// Pipeline wires the researcher and summarizer agents to their backends.
type Pipeline struct {
	Client    ChatClient
	Fetcher   PaperFetcher
	Defs      Definitions
	MaxPapers int
}

// NewPipeline returns a Pipeline with default agent definitions.
func NewPipeline(client ChatClient, fetcher PaperFetcher, maxPapers int) *Pipeline {
	if maxPapers <= 0 {
		maxPapers = 5
	}
	return &Pipeline{
		Client:    client,
		Fetcher:   fetcher,
		Defs:      DefaultDefinitions(),
		MaxPapers: maxPapers,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Review is the generated review. Review.Model is empty when the
	// deterministic fallback produced the content.
	Review types.Review

	// Messages is the full message stream in emission order.
	Messages []types.Message
}

// Run executes the pipeline for a topic: the researcher fetches papers,
// the summarizer produces the review. A blank topic is rejected before
// any network activity. Each call runs the pipeline exactly once.
func (p *Pipeline) Run(ctx context.Context, topic string) (*Result, error) {
	return p.run(ctx, topic, nil)
}

// RunStream executes the pipeline and additionally emits each message on
// the returned channel as agents complete their turns. The channel is
// closed when the run finishes; errCh receives the terminal error, if any.
func (p *Pipeline) RunStream(ctx context.Context, topic string) (<-chan types.Message, <-chan error, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, nil, fmt.Errorf("topic is empty: provide a research topic")
	}

	msgCh := make(chan types.Message, 4)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		defer close(errCh)

		_, err := p.run(ctx, topic, func(m types.Message) {
			select {
			case msgCh <- m:
			case <-ctx.Done():
			}
		})
		if err != nil {
			errCh <- err
		}
	}()

	return msgCh, errCh, nil
}

// run is the shared turn loop. emit, when non-nil, observes each message
// as it is produced.
func (p *Pipeline) run(ctx context.Context, topic string, emit func(types.Message)) (*Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is empty: provide a research topic")
	}

	result := &Result{}
	say := func(source, content string) {
		m := types.Message{Source: source, Content: content, CreatedAt: time.Now().UTC()}
		result.Messages = append(result.Messages, m)
		if emit != nil {
			emit(m)
		}
	}

	// Researcher turn: fetch papers via the get_papers tool.
	papers, err := p.Fetcher.Search(ctx, topic, p.MaxPapers)
	if err != nil {
		return nil, fmt.Errorf("fetching papers: %w", err)
	}
	if len(papers) == 0 {
		say(p.Defs.Researcher.Name, "No papers found for this topic. Please try a different search term.")
		return nil, fmt.Errorf("no papers found for %q: try a different search term", topic)
	}

	papersJSON, err := json.MarshalIndent(papers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding papers: %w", err)
	}
	say(p.Defs.Researcher.Name, fmt.Sprintf("Fetched %d papers from arXiv for %q.", len(papers), topic))

	// Summarizer turn: one LLM call, deterministic fallback on weak output.
	content, model := p.summarize(ctx, topic, string(papersJSON), papers)
	say(p.Defs.Summarizer.Name, content)

	result.Review = types.Review{
		Topic:     topic,
		Model:     model,
		Content:   content,
		Papers:    papers,
		CreatedAt: time.Now().UTC(),
	}
	return result, nil
}

// summarize asks the LLM for the review and falls back to the formatted
// template when the call fails or the reply is too short to be a review.
// It returns the review text and the model that produced it (empty for
// the fallback).
func (p *Pipeline) summarize(ctx context.Context, topic, papersJSON string, papers []types.Paper) (string, string) {
	prompt, err := renderSummarizerPrompt(topic, papersJSON)
	if err == nil && p.Client != nil {
		reply, llmErr := p.Client.Complete(ctx, []groq.ChatMessage{
			{Role: "system", Content: p.Defs.Summarizer.SystemPrompt},
			{Role: "user", Content: prompt},
		})
		if llmErr == nil && len(strings.TrimSpace(reply)) >= minReviewLength {
			return reply, p.Client.Model()
		}
	}
	return review.Formatted(topic, papers), ""
}

func renderSummarizerPrompt(topic, papersJSON string) (string, error) {
	var buf bytes.Buffer
	err := summarizerPromptTmpl.Execute(&buf, struct {
		Topic      string
		PapersJSON string
	}{Topic: topic, PapersJSON: papersJSON})
	return buf.String(), err
}
