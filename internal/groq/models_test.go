// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package groq

import (
	"sort"
	"testing"
)

func TestRecommended(t *testing.T) {
	tests := []struct {
		useCase string
		want    string
	}{
		{"general", "llama-3.3-70b-versatile"},
		{"research", "llama-3.3-70b-versatile"},
		{"fast", "llama-3.1-8b-instant"},
		{"coding", "meta-llama/llama-4-maverick-17b-128e-instruct"},
		{"unknown-use-case", DefaultModel},
		{"", DefaultModel},
	}
	for _, tt := range tests {
		if got := Recommended(tt.useCase); got != tt.want {
			t.Errorf("Recommended(%q) = %q, want %q", tt.useCase, got, tt.want)
		}
	}
}

func TestRecommendedIsSupported(t *testing.T) {
	for _, useCase := range []string{"general", "research", "fast", "coding", ""} {
		if !IsSupported(Recommended(useCase)) {
			t.Errorf("Recommended(%q) = %q is not in the supported table", useCase, Recommended(useCase))
		}
	}
}

func TestIsSupported(t *testing.T) {
	if !IsSupported(DefaultModel) {
		t.Errorf("IsSupported(%q) = false", DefaultModel)
	}
	if IsSupported("gpt-4") {
		t.Error(`IsSupported("gpt-4") = true, want false`)
	}
}

func TestModelIDsSorted(t *testing.T) {
	ids := ModelIDs()
	if len(ids) != len(SupportedModels) {
		t.Fatalf("len(ids) = %d, want %d", len(ids), len(SupportedModels))
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("ModelIDs() not sorted: %v", ids)
	}
}
