// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv API and returns ranked, deduplicated
// paper metadata for the review pipeline.
package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/scholarsynth/internal/httputil"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

// apiBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://export.arxiv.org/api/query"

// maxSummaryRunes bounds the abstract length carried into prompts.
const maxSummaryRunes = 400

// Client fetches papers from the arXiv API.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	MaxRetries int
}

// NewClient returns a Client configured from cfg.
func NewClient(cfg types.SearchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
	}
}

// Search queries arXiv for papers matching topic, sorted by relevance.
// A blank topic is rejected before any network request. Results are
// deduplicated and carry position-based relevance scores.
func (c *Client) Search(ctx context.Context, topic string, maxResults int) ([]types.Paper, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("empty search topic")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	q := buildQuery(topic)
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		apiBase, q, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed atomFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	total := len(feed.Entries)
	var papers []types.Paper
	for i, entry := range feed.Entries {
		id := extractID(entry.ID)
		if id == "" {
			continue
		}

		p := types.Paper{
			ArxivID: id,
			Title:   strings.Join(strings.Fields(entry.Title), " "),
			Summary: collapseSummary(entry.Summary),
			PDFURL:  entry.pdfURL(),
		}

		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			p.Published = t
		}

		// Position-based relevance score.
		if total > 1 {
			p.RelevanceScore = 1.0 - float64(i)/float64(total-1)*0.9
		} else {
			p.RelevanceScore = 1.0
		}

		papers = append(papers, p)
	}

	papers, _ = deduplicate(papers)
	return papers, nil
}

// buildQuery constructs the search_query parameter: whitespace-split
// terms are escaped and joined with "+" under a single all: clause.
func buildQuery(topic string) string {
	terms := strings.Fields(topic)
	for i, t := range terms {
		terms[i] = url.QueryEscape(t)
	}
	return "all:" + strings.Join(terms, "+")
}

// collapseSummary flattens newlines in the abstract and truncates it to
// maxSummaryRunes with a trailing ellipsis.
func collapseSummary(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxSummaryRunes {
		return s
	}
	return string(runes[:maxSummaryRunes]) + "..."
}

// Atom feed XML structures.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string       `xml:"id"`
	Title     string       `xml:"title"`
	Summary   string       `xml:"summary"`
	Published string       `xml:"published"`
	Authors   []atomAuthor `xml:"author"`
	Links     []atomLink   `xml:"link"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// pdfURL returns the entry's PDF link, falling back to the abstract URL
// rewritten to its /pdf/ form.
func (e atomEntry) pdfURL() string {
	for _, l := range e.Links {
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	return strings.Replace(e.ID, "/abs/", "/pdf/", 1)
}

// extractID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
