// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarsynth/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "reviews.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReview(id string, createdAt time.Time) types.Review {
	return types.Review{
		ID:      id,
		Topic:   "quantum computing",
		Model:   "llama-3.3-70b-versatile",
		Content: "# Literature Review: quantum computing\n\nbody",
		Papers: []types.Paper{
			{
				ArxivID:        "2301.07041",
				Title:          "Paper One",
				Authors:        []string{"Alice Smith", "Bob Jones"},
				Published:      time.Date(2023, 1, 17, 12, 0, 0, 0, time.UTC),
				Summary:        "First abstract.",
				PDFURL:         "http://arxiv.org/pdf/2301.07041",
				RelevanceScore: 1.0,
			},
			{
				ArxivID:        "2302.00001",
				Title:          "Paper Two",
				RelevanceScore: 0.55,
			},
		},
		CreatedAt: createdAt,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sampleReview("rev-1", time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Get(ctx, "rev-1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Topic, got.Topic)
	assert.Equal(t, want.Model, got.Model)
	assert.Equal(t, want.Content, got.Content)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "CreatedAt: want %v, got %v", want.CreatedAt, got.CreatedAt)

	require.Len(t, got.Papers, 2)
	assert.Equal(t, want.Papers[0].ArxivID, got.Papers[0].ArxivID)
	assert.Equal(t, want.Papers[0].Authors, got.Papers[0].Authors)
	assert.True(t, want.Papers[0].Published.Equal(got.Papers[0].Published))
	assert.Equal(t, want.Papers[0].RelevanceScore, got.Papers[0].RelevanceScore)
	assert.Equal(t, "Paper Two", got.Papers[1].Title)
	assert.Empty(t, got.Papers[1].Authors)
	assert.True(t, got.Papers[1].Published.IsZero())
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, s.Save(ctx, sampleReview("rev-old", base.Add(-2*time.Hour))))
	require.NoError(t, s.Save(ctx, sampleReview("rev-new", base)))
	require.NoError(t, s.Save(ctx, sampleReview("rev-mid", base.Add(-time.Hour))))

	reviews, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "rev-new", reviews[0].ID)
	assert.Equal(t, "rev-mid", reviews[1].ID)
	assert.Equal(t, "rev-old", reviews[2].ID)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleReview("rev-1", time.Now().UTC())))
	require.NoError(t, s.Delete(ctx, "rev-1"))

	_, err := s.Get(ctx, "rev-1")
	require.ErrorIs(t, err, sql.ErrNoRows)

	var papers int
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM review_papers WHERE review_id = ?`, "rev-1").Scan(&papers))
	assert.Zero(t, papers, "papers should cascade-delete with the review")
}

func TestDeleteMissingIsNoError(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Delete(context.Background(), "never-existed"))
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "reviews.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), sampleReview("rev-1", time.Now().UTC())))
}
