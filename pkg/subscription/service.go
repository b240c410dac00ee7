package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"subhub_backend/internal/model"
	"subhub_backend/internal/repository"
)

// PlanCatalog is the slice of the plan catalog the lifecycle engine needs.
type PlanCatalog interface {
	GetByName(ctx context.Context, name string) (*model.Plan, error)
}

// Service implements the subscription lifecycle: create, renew, delete and
// the lookups behind them. Store, catalog and clock are injected rather than
// reached for as globals.
type Service struct {
	subs    repository.SubscriptionRepository
	catalog PlanCatalog
	clock   Clock
}

func NewService(subs repository.SubscriptionRepository, catalog PlanCatalog, clock Clock) *Service {
	return &Service{subs: subs, catalog: catalog, clock: clock}
}

// Create subscribes the user to the named plan. The start date is always the
// creation instant; the end date is start plus the plan duration. A still
// active subscription rejects the create; an expired leftover (for example an
// auto-renew record the sweeper skipped) is replaced.
func (s *Service) Create(ctx context.Context, userID uint, planName string, autoRenew bool) (*model.Subscription, error) {
	now := s.clock.Now()

	existing, err := s.subs.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up current subscription: %w", err)
	}
	if err == nil && existing.IsActive(now) {
		return nil, ErrActiveSubscriptionExists
	}

	plan, err := s.catalog.GetByName(ctx, planName)
	if err != nil {
		return nil, err
	}

	// Only replace the expired leftover once the create is sure to proceed;
	// a failed create must leave the store untouched.
	if existing != nil {
		if err := s.subs.DeleteForUser(ctx, userID, existing.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("replacing expired subscription: %w", err)
		}
	}

	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		AutoRenew: autoRenew,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		// A racing create for the same user loses on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrActiveSubscriptionExists
		}
		return nil, fmt.Errorf("creating subscription: %w", err)
	}
	sub.Plan = *plan
	return sub, nil
}

// Renew extends the subscription by one plan duration, gated on the plan's
// renewal window. Expired subscriptions are always eligible: the extension is
// still computed from the old end date, which preserves the grace-period
// behavior of charging for the lapsed time.
func (s *Service) Renew(ctx context.Context, userID, subID uint) (time.Time, error) {
	now := s.clock.Now()

	updated, err := s.subs.UpdateLocked(ctx, userID, subID, func(sub *model.Subscription) error {
		window, err := renewalWindow(sub.Plan.Name)
		if err != nil {
			return err
		}
		if sub.EndDate.Sub(now) > window {
			return ErrNotEligible
		}
		sub.EndDate = sub.EndDate.AddDate(0, 0, sub.Plan.DurationDays)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, ErrSubscriptionNotFound
		}
		return time.Time{}, err
	}
	return updated.EndDate, nil
}

// Get returns the subscription only if it belongs to the user.
func (s *Service) Get(ctx context.Context, userID, subID uint) (*model.Subscription, error) {
	sub, err := s.subs.GetByIDForUser(ctx, userID, subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// GetByUser returns the user's subscription regardless of its id.
func (s *Service) GetByUser(ctx context.Context, userID uint) (*model.Subscription, error) {
	sub, err := s.subs.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// List returns every subscription. Administrative; not user-scoped.
func (s *Service) List(ctx context.Context) ([]model.Subscription, error) {
	return s.subs.List(ctx)
}

// Delete removes the subscription only if it belongs to the user.
func (s *Service) Delete(ctx context.Context, userID, subID uint) error {
	if err := s.subs.DeleteForUser(ctx, userID, subID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}
