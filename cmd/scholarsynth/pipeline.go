// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholarsynth/internal/agent"
	"github.com/pdiddy/scholarsynth/internal/arxiv"
	"github.com/pdiddy/scholarsynth/internal/config"
	"github.com/pdiddy/scholarsynth/internal/groq"
	"github.com/pdiddy/scholarsynth/internal/store"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

// pipelineDeps bundles the wired pipeline and its optional store.
type pipelineDeps struct {
	pipeline *agent.Pipeline
	store    *store.Store
}

func (d *pipelineDeps) close() {
	if d.store != nil {
		d.store.Close()
	}
}

// buildPipeline resolves the credential, applies shared flags, and wires
// the Groq client, arXiv client, and agent definitions into a pipeline.
// The credential check happens here, before any network call.
func buildPipeline(cmd *cobra.Command, cfg *types.Config) (*pipelineDeps, error) {
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.LLM.Model = model
	}
	if n, _ := cmd.Flags().GetInt("max-papers"); n > 0 {
		cfg.Search.MaxResults = n
	}
	if agents, _ := cmd.Flags().GetString("agents"); agents != "" {
		cfg.AgentsFile = agents
	}

	if !config.ResolveAPIKey(cfg, loadedSecrets) {
		return nil, errors.New("GROQ_API_KEY is not set: configure it in the environment, scholarsynth.yaml, or .secrets/groq-api-key")
	}

	client, err := groq.NewClient(cfg.LLM)
	if err != nil {
		return nil, err
	}

	defs, err := agent.LoadDefinitions(cfg.AgentsFile)
	if err != nil {
		return nil, err
	}

	pipeline := agent.NewPipeline(client, arxiv.NewClient(cfg.Search), cfg.Search.MaxResults)
	pipeline.Defs = defs

	deps := &pipelineDeps{pipeline: pipeline}
	if cfg.Store.Path != "" {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		deps.store = st
	}
	return deps, nil
}
