// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdiddy/scholarsynth/internal/groq"
	"github.com/pdiddy/scholarsynth/internal/review"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

type createReviewReq struct {
	Topic string `json:"topic"`
}

// createReview validates the topic locally, runs the pipeline exactly
// once, and persists the result.
func (s *Server) createReview(c *gin.Context) {
	var req createReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "topic must not be empty"})
		return
	}

	result, err := s.pipeline.Run(c.Request.Context(), topic)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	rev := result.Review
	rev.ID = uuid.NewString()
	s.registry.set(rev)
	if s.store != nil {
		if err := s.store.Save(c.Request.Context(), rev); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}

	html, _ := review.RenderHTML(rev.Content)
	c.JSON(http.StatusCreated, gin.H{
		"ok":       true,
		"review":   rev,
		"messages": result.Messages,
		"html":     html,
	})
}

func (s *Server) listReviews(c *gin.Context) {
	if s.store != nil {
		reviews, err := s.store.List(c.Request.Context(), 50)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "reviews": summarize(reviews)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "reviews": summarize(s.registry.list())})
}

func (s *Server) getReview(c *gin.Context) {
	rev, ok := s.lookup(c, c.Param("id"))
	if !ok {
		return
	}
	html, _ := review.RenderHTML(rev.Content)
	c.JSON(http.StatusOK, gin.H{"ok": true, "review": rev, "html": html})
}

// downloadReview serves the review text as a file attachment. The body
// is exactly the stored review content in every format.
func (s *Server) downloadReview(c *gin.Context) {
	rev, ok := s.lookup(c, c.Param("id"))
	if !ok {
		return
	}

	format, err := review.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+review.Filename(rev.Topic, format)+`"`)
	c.Data(http.StatusOK, format.MIMEType(), []byte(rev.Content))
}

func (s *Server) deleteReview(c *gin.Context) {
	id := c.Param("id")
	s.registry.delete(id)
	if s.store != nil {
		if err := s.store.Delete(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) listModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"current": s.model,
		"models":  groq.SupportedModels,
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// lookup finds a review in the registry or the store, writing a 404 when
// absent.
func (s *Server) lookup(c *gin.Context, id string) (types.Review, bool) {
	if rev, ok := s.registry.get(id); ok {
		return rev, true
	}
	if s.store != nil {
		rev, err := s.store.Get(c.Request.Context(), id)
		if err == nil {
			return *rev, true
		}
		if !errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return types.Review{}, false
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "review not found"})
	return types.Review{}, false
}

// reviewSummary is the list-view shape: content is withheld to keep the
// history payload small.
type reviewSummary struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Model     string `json:"model,omitempty"`
	CreatedAt string `json:"created_at"`
}

func summarize(reviews []types.Review) []reviewSummary {
	out := make([]reviewSummary, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, reviewSummary{
			ID:        r.ID,
			Topic:     r.Topic,
			Model:     r.Model,
			CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
