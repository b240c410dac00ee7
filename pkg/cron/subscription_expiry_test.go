package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"subhub_backend/internal/model"
)

var sweepNow = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

type sweepRepo struct {
	subs       map[uint]*model.Subscription
	failDelete map[uint]error
	// listOverride, when set, is returned by ListExpired as-is to model a
	// snapshot that went stale between the read and the deletes.
	listOverride []model.Subscription
}

func newSweepRepo(subs ...model.Subscription) *sweepRepo {
	r := &sweepRepo{subs: make(map[uint]*model.Subscription), failDelete: make(map[uint]error)}
	for i := range subs {
		sub := subs[i]
		r.subs[sub.ID] = &sub
	}
	return r
}

func (r *sweepRepo) Create(context.Context, *model.Subscription) error { return nil }

func (r *sweepRepo) GetByUserID(context.Context, uint) (*model.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *sweepRepo) GetByIDForUser(context.Context, uint, uint) (*model.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *sweepRepo) List(context.Context) ([]model.Subscription, error) { return nil, nil }

func (r *sweepRepo) UpdateLocked(context.Context, uint, uint, func(*model.Subscription) error) (*model.Subscription, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *sweepRepo) DeleteForUser(context.Context, uint, uint) error { return nil }

func (r *sweepRepo) ListExpired(_ context.Context, now time.Time) ([]model.Subscription, error) {
	if r.listOverride != nil {
		return r.listOverride, nil
	}
	var out []model.Subscription
	for _, sub := range r.subs {
		if sub.EndDate.Before(now) && !sub.AutoRenew {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *sweepRepo) DeleteIfExpired(_ context.Context, id uint, now time.Time) (bool, error) {
	if err, ok := r.failDelete[id]; ok {
		return false, err
	}
	sub, ok := r.subs[id]
	if !ok || !sub.EndDate.Before(now) || sub.AutoRenew {
		return false, nil
	}
	delete(r.subs, id)
	return true, nil
}

func expiredSub(id uint, autoRenew bool, end time.Time) model.Subscription {
	sub := model.Subscription{UserID: id, EndDate: end, AutoRenew: autoRenew}
	sub.ID = id
	return sub
}

func TestSweepRemovesOnlyExpiredNonRenewing(t *testing.T) {
	repo := newSweepRepo(
		expiredSub(1, false, sweepNow.AddDate(0, 0, -1)), // expired, no auto-renew
		expiredSub(2, true, sweepNow.AddDate(0, 0, -1)),  // expired, auto-renew
		expiredSub(3, false, sweepNow.AddDate(0, 0, 1)),  // still active
	)

	sweeper := NewSweeper(repo, fixedClock{now: sweepNow})
	count := sweeper.Sweep(context.Background())

	assert.Equal(t, 1, count)
	assert.NotContains(t, repo.subs, uint(1))
	assert.Contains(t, repo.subs, uint(2))
	assert.Contains(t, repo.subs, uint(3))
}

func TestSweepContinuesPastFailedDeletes(t *testing.T) {
	repo := newSweepRepo(
		expiredSub(1, false, sweepNow.AddDate(0, 0, -3)),
		expiredSub(2, false, sweepNow.AddDate(0, 0, -2)),
		expiredSub(3, false, sweepNow.AddDate(0, 0, -1)),
	)
	repo.failDelete[2] = errors.New("storage unavailable")

	sweeper := NewSweeper(repo, fixedClock{now: sweepNow})
	count := sweeper.Sweep(context.Background())

	assert.Equal(t, 2, count)
	assert.Contains(t, repo.subs, uint(2))
}

func TestSweepSkipsRecordRenewedMidSweep(t *testing.T) {
	stale := expiredSub(1, false, sweepNow.AddDate(0, 0, -1))
	repo := newSweepRepo(stale)

	// A renewal lands between the sweep's read and its delete: the sweep
	// still holds the stale snapshot, but the stored row has moved on.
	repo.listOverride = []model.Subscription{stale}
	repo.subs[1].EndDate = sweepNow.AddDate(0, 0, 30)

	sweeper := NewSweeper(repo, fixedClock{now: sweepNow})

	count := sweeper.Sweep(context.Background())
	assert.Equal(t, 0, count)
	assert.Contains(t, repo.subs, uint(1))
}

func TestSweepEmptyStore(t *testing.T) {
	sweeper := NewSweeper(newSweepRepo(), fixedClock{now: sweepNow})
	assert.Equal(t, 0, sweeper.Sweep(context.Background()))
}
