// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the review pipeline over HTTP: a JSON API and
// an embedded single-page web UI.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/scholarsynth/internal/agent"
	"github.com/pdiddy/scholarsynth/internal/store"
	"github.com/pdiddy/scholarsynth/pkg/types"
)

//go:embed static
var embeddedStatic embed.FS

// Runner abstracts the review pipeline so handler tests can count
// invocations without network access.
type Runner interface {
	Run(ctx context.Context, topic string) (*agent.Result, error)
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	pipeline Runner
	store    *store.Store // nil when persistence is disabled
	model    string
	registry *registry
}

// New returns a Server. st may be nil; reviews then live only in the
// in-memory registry for the lifetime of the process.
func New(pipeline Runner, st *store.Store, model string) (*Server, error) {
	if pipeline == nil {
		return nil, errors.New("pipeline is required")
	}
	return &Server{
		pipeline: pipeline,
		store:    st,
		model:    model,
		registry: newRegistry(),
	}, nil
}

// Router builds the gin engine: CORS, API routes, and the embedded UI.
func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	{
		api.POST("/reviews", s.createReview)
		api.GET("/reviews", s.listReviews)
		api.GET("/reviews/:id", s.getReview)
		api.GET("/reviews/:id/download", s.downloadReview)
		api.DELETE("/reviews/:id", s.deleteReview)
		api.GET("/models", s.listModels)
	}
	r.GET("/healthz", s.health)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err == nil {
		r.StaticFS("/ui", http.FS(staticFS))
		r.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/ui/")
		})
	}

	return r
}

// registry is the in-memory review cache used when no store is
// configured, and as a fast path when one is.
type registry struct {
	mu      sync.Mutex
	reviews map[string]types.Review
}

func newRegistry() *registry {
	return &registry{reviews: make(map[string]types.Review)}
}

func (r *registry) set(rev types.Review) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[rev.ID] = rev
}

func (r *registry) get(id string) (types.Review, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[id]
	return rev, ok
}

func (r *registry) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, id)
}

func (r *registry) list() []types.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Review, 0, len(r.reviews))
	for _, rev := range r.reviews {
		out = append(out, rev)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
