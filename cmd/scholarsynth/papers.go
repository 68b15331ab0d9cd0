// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarsynth/internal/arxiv"
	"github.com/pdiddy/scholarsynth/internal/config"
)

var papersCmd = &cobra.Command{
	Use:   "papers [topic]",
	Short: "Search arXiv for papers on a topic",
	Long: `Papers queries the arXiv API for papers matching a topic, sorted by
relevance. This is the researcher agent's tool exposed directly; no Groq
credential is needed.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPapers,
}

func runPapers(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic is empty: provide a research topic")
	}

	cfg := config.Load()
	maxResults := cfg.Search.MaxResults
	if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
		maxResults = n
	}

	client := arxiv.NewClient(cfg.Search)
	papers, err := client.Search(cmd.Context(), topic, maxResults)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return arxiv.FormatJSON(papers, cmd.OutOrStdout())
	}
	arxiv.FormatTable(papers, cmd.OutOrStdout())
	return nil
}

func init() {
	papersCmd.Flags().Int("max-results", 0, "maximum number of papers to return (default 5)")
	papersCmd.Flags().Bool("json", false, "output papers as JSON")

	rootCmd.AddCommand(papersCmd)
}
