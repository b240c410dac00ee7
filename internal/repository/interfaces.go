package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"subhub_backend/internal/model"
)

// PlanRepository defines the interface for plan-related database operations
type PlanRepository interface {
	Create(ctx context.Context, plan *model.Plan) error
	GetByID(ctx context.Context, id uint) (*model.Plan, error)
	GetByName(ctx context.Context, name string) (*model.Plan, error)
	GetAll(ctx context.Context) ([]model.Plan, error)
	Update(ctx context.Context, plan *model.Plan) error
	Delete(ctx context.Context, id uint) error
}

// SubscriptionRepository defines the interface for subscription-related
// database operations. All user-scoped lookups return gorm.ErrRecordNotFound
// for rows owned by another user so that existence is never leaked.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	GetByUserID(ctx context.Context, userID uint) (*model.Subscription, error)
	GetByIDForUser(ctx context.Context, userID, id uint) (*model.Subscription, error)
	List(ctx context.Context) ([]model.Subscription, error)
	// UpdateLocked loads the owned subscription under a row lock, applies
	// mutate and persists the result in one transaction. An error from
	// mutate rolls the transaction back and is returned unchanged.
	UpdateLocked(ctx context.Context, userID, id uint, mutate func(*model.Subscription) error) (*model.Subscription, error)
	DeleteForUser(ctx context.Context, userID, id uint) error
	// ListExpired returns subscriptions with end_date < now that are not
	// flagged for auto-renewal.
	ListExpired(ctx context.Context, now time.Time) ([]model.Subscription, error)
	// DeleteIfExpired deletes the row only if it is still expired and still
	// not auto-renewing, so a concurrent renewal is never clobbered.
	DeleteIfExpired(ctx context.Context, id uint, now time.Time) (bool, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Plan         PlanRepository
	Subscription SubscriptionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Plan:         NewPlanRepository(db),
		Subscription: NewSubscriptionRepository(db),
	}
}
