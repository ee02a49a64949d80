package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/freelancehub/marketplace-api/internal/api/metrics"
	"github.com/freelancehub/marketplace-api/internal/core/domain"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
)

const viewTTL = 15 * time.Minute

// ProfileCache caches rendered profile views keyed by user id.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
}

func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

func (c *ProfileCache) Get(ctx context.Context, id uuid.UUID) (*ports.ProfileView, error) {
	raw, err := c.client.Get(ctx, profileKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ViewCacheTotal.WithLabelValues("profile", "miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}
	metrics.ViewCacheTotal.WithLabelValues("profile", "hit").Inc()

	var view ports.ProfileView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	return &view, nil
}

func (c *ProfileCache) Set(ctx context.Context, id uuid.UUID, view *ports.ProfileView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, profileKey(id), raw, viewTTL).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, profileKey(id)).Err()
}

func profileKey(id uuid.UUID) string {
	return "profile:" + id.String()
}

// ProjectCache caches project views keyed by project id.
// Key format: project:<project_id>
type ProjectCache struct {
	client *redis.Client
}

func NewProjectCache(client *redis.Client) *ProjectCache {
	return &ProjectCache{client: client}
}

func (c *ProjectCache) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	raw, err := c.client.Get(ctx, projectKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ViewCacheTotal.WithLabelValues("project", "miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("project cache get: %w", err)
	}
	metrics.ViewCacheTotal.WithLabelValues("project", "hit").Inc()

	var project domain.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("project cache decode: %w", err)
	}
	return &project, nil
}

func (c *ProjectCache) Set(ctx context.Context, id uuid.UUID, project *domain.Project) error {
	raw, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("project cache encode: %w", err)
	}
	return c.client.Set(ctx, projectKey(id), raw, viewTTL).Err()
}

func (c *ProjectCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, projectKey(id)).Err()
}

func projectKey(id uuid.UUID) string {
	return "project:" + id.String()
}
