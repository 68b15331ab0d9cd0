// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarsynth/internal/groq"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List Groq models known to this client",
	RunE: func(cmd *cobra.Command, args []string) error {
		if useCase, _ := cmd.Flags().GetString("recommend"); useCase != "" {
			fmt.Fprintln(cmd.OutOrStdout(), groq.Recommended(useCase))
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-50s  %-8s  %s\n", "Model", "Context", "Tier")
		for _, id := range groq.ModelIDs() {
			info := groq.SupportedModels[id]
			fmt.Fprintf(w, "%-50s  %-8s  %s\n", id, info.Context, info.Tier)
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().String("recommend", "", "print the recommended model for a use case: general, research, fast, coding")

	rootCmd.AddCommand(modelsCmd)
}
