package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"

	"github.com/nirmaanhomes/backend/internal/models"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService serves the public project catalogue and blog. Content is
// seeded in-process; listings are cached in redis so the catalogue pages
// survive traffic spikes from campaign landings.
type CatalogService struct {
	redis    *redis.Client
	projects []models.Project
	posts    []models.BlogPost
}

func NewCatalogService(redisClient *redis.Client, projects []models.Project, posts []models.BlogPost) *CatalogService {
	sorted := make([]models.BlogPost, len(posts))
	copy(sorted, posts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PublishDate > sorted[j].PublishDate
	})

	return &CatalogService{
		redis:    redisClient,
		projects: projects,
		posts:    sorted,
	}
}

// ListProjects lists catalogue projects
// @Summary List projects
// @Description List catalogue projects, optionally filtered by lifecycle phase
// @Tags catalog
// @Produce json
// @Param type query string false "completed | ongoing | upcoming"
// @Success 200 {object} map[string]interface{}
// @Router /projects [get]
func (s *CatalogService) ListProjects(w http.ResponseWriter, r *http.Request) {
	projectType := r.URL.Query().Get("type")

	cacheKey := "catalog:projects:" + projectType
	if cached, ok := s.cacheGet(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	projects := []models.Project{}
	for _, p := range s.projects {
		if projectType == "" || p.Type == projectType {
			projects = append(projects, p)
		}
	}

	body := map[string]any{"projects": projects, "count": len(projects)}
	s.respondAndCache(r.Context(), w, cacheKey, body)
}

// GetProject returns a single catalogue project
// @Summary Get project
// @Description Fetch one project by its catalogue ID
// @Tags catalog
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /projects/{id} [get]
func (s *CatalogService) GetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range s.projects {
		if p.ID == id {
			RespondJSON(w, http.StatusOK, p)
			return
		}
	}
	SendServiceError(w, ErrNotFound)
}

// ListPosts lists blog posts
// @Summary List blog posts
// @Description List posts newest first, optionally filtered by category and limited
// @Tags catalog
// @Produce json
// @Param category query string false "Post category"
// @Param limit query int false "Maximum number of posts"
// @Success 200 {object} map[string]interface{}
// @Router /blog [get]
func (s *CatalogService) ListPosts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
			limit = v
		}
	}

	cacheKey := "catalog:blog:" + category + ":" + strconv.Itoa(limit)
	if cached, ok := s.cacheGet(r.Context(), cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	posts := []models.BlogPost{}
	for _, p := range s.posts {
		if category != "" && p.Category != category {
			continue
		}
		posts = append(posts, p)
		if limit > 0 && len(posts) == limit {
			break
		}
	}

	body := map[string]any{"posts": posts, "count": len(posts)}
	s.respondAndCache(r.Context(), w, cacheKey, body)
}

// GetPost returns a single blog post
// @Summary Get blog post
// @Description Fetch one post by ID
// @Tags catalog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse "Not found"
// @Router /blog/{id} [get]
func (s *CatalogService) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range s.posts {
		if p.ID == id {
			RespondJSON(w, http.StatusOK, p)
			return
		}
	}
	SendServiceError(w, ErrNotFound)
}

func (s *CatalogService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *CatalogService) respondAndCache(ctx context.Context, w http.ResponseWriter, key string, body map[string]any) {
	payload, err := json.Marshal(body)
	if err != nil {
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
		return
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, key, string(payload), catalogCacheTTL).Err(); err != nil {
			log.Printf("[CATALOG] Failed to cache %s: %v", key, err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
