package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"subhub_backend/internal/model"
)

type fakePlanRepo struct {
	plans       map[uint]*model.Plan
	nextID      uint
	getAllCalls int
}

func newFakePlanRepo(plans ...model.Plan) *fakePlanRepo {
	r := &fakePlanRepo{plans: make(map[uint]*model.Plan), nextID: 1}
	for i := range plans {
		plan := plans[i]
		if plan.ID == 0 {
			plan.ID = r.nextID
		}
		if plan.ID >= r.nextID {
			r.nextID = plan.ID + 1
		}
		r.plans[plan.ID] = &plan
	}
	return r
}

func (r *fakePlanRepo) Create(_ context.Context, plan *model.Plan) error {
	plan.ID = r.nextID
	r.nextID++
	copied := *plan
	r.plans[copied.ID] = &copied
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id uint) (*model.Plan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetByName(_ context.Context, name string) (*model.Plan, error) {
	for _, plan := range r.plans {
		if plan.Name == name {
			copied := *plan
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePlanRepo) GetAll(_ context.Context) ([]model.Plan, error) {
	r.getAllCalls++
	var out []model.Plan
	for _, plan := range r.plans {
		out = append(out, *plan)
	}
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *model.Plan) error {
	copied := *plan
	r.plans[copied.ID] = &copied
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.plans[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.plans, id)
	return nil
}

type fakeCache struct {
	entries  map[string]string
	getErr   error
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.setCalls++
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.getErr != nil {
		return "", c.getErr
	}
	value, ok := c.entries[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return value, nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func monthlyPlan() model.Plan {
	return model.Plan{Name: model.PlanMonthly, Price: 10.00, DurationDays: 30}
}

func TestListPopulatesAndUsesCache(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	cache := newFakeCache()
	catalog := NewCatalog(repo, cache)

	plans, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Contains(t, cache.entries, cacheKey)

	// Second read is served from the cache, not the store.
	plans, err = catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestListDegradesWhenCacheFails(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	catalog := NewCatalog(repo, cache)

	plans, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestListDiscardsCorruptCacheEntry(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	cache := newFakeCache()
	cache.entries[cacheKey] = "{not json"
	catalog := NewCatalog(repo, cache)

	plans, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestListWithoutCache(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	catalog := NewCatalog(repo, nil)

	plans, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestGetByNameUnknown(t *testing.T) {
	catalog := NewCatalog(newFakePlanRepo(), newFakeCache())

	_, err := catalog.GetByName(context.Background(), "weekly")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateInvalidatesCache(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	cache := newFakeCache()
	catalog := NewCatalog(repo, cache)

	_, err := catalog.List(context.Background())
	require.NoError(t, err)
	require.Contains(t, cache.entries, cacheKey)

	newPlan := model.Plan{Name: model.PlanYearly, Price: 80.00, DurationDays: 365}
	require.NoError(t, catalog.Create(context.Background(), &newPlan))
	assert.NotContains(t, cache.entries, cacheKey)

	// The next list recomputes and sees both plans.
	plans, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestUpdateInvalidatesCache(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	cache := newFakeCache()
	catalog := NewCatalog(repo, cache)

	_, err := catalog.List(context.Background())
	require.NoError(t, err)

	updated, err := catalog.Update(context.Background(), 1, 12.50, 30)
	require.NoError(t, err)
	assert.Equal(t, 12.50, updated.Price)
	assert.NotContains(t, cache.entries, cacheKey)
}

func TestUpdateUnknownPlan(t *testing.T) {
	catalog := NewCatalog(newFakePlanRepo(), newFakeCache())

	_, err := catalog.Update(context.Background(), 99, 12.50, 30)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteInvalidatesCache(t *testing.T) {
	repo := newFakePlanRepo(monthlyPlan())
	cache := newFakeCache()
	catalog := NewCatalog(repo, cache)

	_, err := catalog.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, catalog.Delete(context.Background(), 1))
	assert.NotContains(t, cache.entries, cacheKey)

	assert.ErrorIs(t, catalog.Delete(context.Background(), 1), ErrNotFound)
}
