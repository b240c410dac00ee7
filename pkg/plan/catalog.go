package plan

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"subhub_backend/internal/model"
	"subhub_backend/internal/repository"
)

const (
	cacheKey = "sub_plans"
	cacheTTL = 15 * time.Minute
)

// ErrNotFound is returned for an unknown plan id or name.
var ErrNotFound = errors.New("subscription plan not found")

// Cache is the subset of cache operations the catalog needs.
type Cache interface {
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Catalog serves the plan reference data. Reads of the full list go through a
// time-bounded cache; every mutation invalidates that cache synchronously.
type Catalog struct {
	plans repository.PlanRepository
	cache Cache
}

func NewCatalog(plans repository.PlanRepository, cache Cache) *Catalog {
	return &Catalog{plans: plans, cache: cache}
}

// List returns all plans, served from cache when possible. Cache failures
// degrade to a store read and are logged, never surfaced.
func (c *Catalog) List(ctx context.Context) ([]model.Plan, error) {
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKey); err == nil {
			var plans []model.Plan
			unmarshalErr := json.Unmarshal([]byte(raw), &plans)
			if unmarshalErr == nil {
				return plans, nil
			}
			log.Printf("Discarding unreadable plan cache entry: %v", unmarshalErr)
		}
	}

	plans, err := c.plans.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if raw, err := json.Marshal(plans); err == nil {
			if err := c.cache.Set(ctx, cacheKey, string(raw), cacheTTL); err != nil {
				log.Printf("Could not populate plan cache: %v", err)
			}
		}
	}
	return plans, nil
}

// GetByName resolves a plan by its enum name.
func (c *Catalog) GetByName(ctx context.Context, name string) (*model.Plan, error) {
	plan, err := c.plans.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

// Create persists a new plan and invalidates the cached list.
func (c *Catalog) Create(ctx context.Context, plan *model.Plan) error {
	if err := c.plans.Create(ctx, plan); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update persists plan changes and invalidates the cached list.
func (c *Catalog) Update(ctx context.Context, id uint, price float64, durationDays int) (*model.Plan, error) {
	plan, err := c.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	plan.Price = price
	plan.DurationDays = durationDays
	if err := c.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return plan, nil
}

// Delete removes a plan and invalidates the cached list.
func (c *Catalog) Delete(ctx context.Context, id uint) error {
	if err := c.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate evicts the cached plan list so the next List recomputes it. It
// runs after the write commits and is best effort.
func (c *Catalog) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, cacheKey); err != nil {
		log.Printf("Could not invalidate plan cache: %v", err)
	}
}
