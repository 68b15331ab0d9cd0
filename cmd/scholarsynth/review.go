// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarsynth/internal/config"
)

var reviewCmd = &cobra.Command{
	Use:   "review [topic]",
	Short: "Generate a literature review for a topic",
	Long: `Review runs the pipeline once for a topic: the researcher agent fetches
papers from arXiv, the summarizer agent writes a Markdown review. The review
is printed to stdout or written to a file with --output.`,
	Args: cobra.ArbitraryArgs,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic is empty: provide a research topic, e.g. scholarsynth review \"quantum computing\"")
	}

	cfg := config.Load()
	deps, err := buildPipeline(cmd, &cfg)
	if err != nil {
		return err
	}
	defer deps.close()

	result, err := deps.pipeline.Run(cmd.Context(), topic)
	if err != nil {
		return err
	}
	for _, m := range result.Messages[:len(result.Messages)-1] {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", m.Source, m.Content)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Review.Content)
		return nil
	}

	if err := os.WriteFile(output, []byte(result.Review.Content), 0o644); err != nil {
		return fmt.Errorf("writing review: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
	return nil
}

func init() {
	reviewCmd.Flags().String("model", "", "Groq model identifier")
	reviewCmd.Flags().Int("max-papers", 0, "papers fetched per topic (default 5)")
	reviewCmd.Flags().String("agents", "", "YAML file overriding agent definitions")
	reviewCmd.Flags().StringP("output", "o", "", "write the review to a file (default: stdout)")

	rootCmd.AddCommand(reviewCmd)
}
