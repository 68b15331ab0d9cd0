// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholarsynth CLI: a web UI and
// one-shot commands for generating literature reviews from arXiv papers
// with a Groq-hosted LLM.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarsynth/internal/config"
	"github.com/pdiddy/scholarsynth/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scholarsynth CLI.
var rootCmd = &cobra.Command{
	Use:   "scholarsynth",
	Short: "Multi-agent literature review assistant",
	Long: `scholarsynth generates literature reviews: a researcher agent fetches
papers from arXiv for a topic and a summarizer agent synthesizes a Markdown
review with a Groq-hosted LLM.

Run "scholarsynth serve" for the web UI, or "scholarsynth review" for a
one-shot review on the command line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", secrets.Names(s))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholarsynth.yaml or ~/.config/scholarsynth/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	config.Init(cfgFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
