// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package groq

import "sort"

// ModelTier distinguishes production models from preview releases.
type ModelTier string

const (
	TierProduction ModelTier = "production"
	TierPreview    ModelTier = "preview"
)

// ModelInfo describes a Groq-hosted model.
type ModelInfo struct {
	// Context is the context window size (e.g. "128K").
	Context string `json:"context"`

	// Tier is the release tier: production or preview.
	Tier ModelTier `json:"tier"`
}

// SupportedModels lists the Groq models this client knows about, with
// context window and release tier. Unknown models are allowed with a
// warning; Groq retires models on its own schedule.
var SupportedModels = map[string]ModelInfo{
	"llama-3.3-70b-versatile":                      {Context: "128K", Tier: TierProduction},
	"llama-3.1-8b-instant":                         {Context: "128K", Tier: TierProduction},
	"llama3-70b-8192":                              {Context: "8K", Tier: TierProduction},
	"llama3-8b-8192":                               {Context: "8K", Tier: TierProduction},
	"gemma2-9b-it":                                 {Context: "8K", Tier: TierProduction},
	"meta-llama/llama-4-maverick-17b-128e-instruct": {Context: "128K", Tier: TierPreview},
	"meta-llama/llama-4-scout-17b-16e-instruct":     {Context: "128K", Tier: TierPreview},
}

// DefaultModel is the model used when none is configured.
const DefaultModel = "llama-3.3-70b-versatile"

// Recommended returns the model best suited for a use case.
func Recommended(useCase string) string {
	switch useCase {
	case "fast":
		return "llama-3.1-8b-instant"
	case "coding":
		return "meta-llama/llama-4-maverick-17b-128e-instruct"
	case "general", "research":
		return DefaultModel
	default:
		return DefaultModel
	}
}

// IsSupported reports whether model appears in the supported-model table.
func IsSupported(model string) bool {
	_, ok := SupportedModels[model]
	return ok
}

// ModelIDs returns the supported model identifiers in sorted order.
func ModelIDs() []string {
	ids := make([]string, 0, len(SupportedModels))
	for id := range SupportedModels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
