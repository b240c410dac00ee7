package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"subhub_backend/internal/model"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("user_id = ?", userID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) GetByIDForUser(ctx context.Context, userID, id uint) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).Preload("Plan").
		Where("user_id = ?", userID).
		First(&sub, id).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) List(ctx context.Context) ([]model.Subscription, error) {
	var subs []model.Subscription
	if err := r.db.WithContext(ctx).Preload("Plan").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// UpdateLocked serializes concurrent writers on the same row with
// SELECT ... FOR UPDATE so the mutation never works from a stale read.
func (r *subscriptionRepository) UpdateLocked(ctx context.Context, userID, id uint, mutate func(*model.Subscription) error) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&sub, id).Error; err != nil {
			return err
		}
		if err := tx.First(&sub.Plan, sub.PlanID).Error; err != nil {
			return err
		}
		if err := mutate(&sub); err != nil {
			return err
		}
		// The preloaded Plan is read-only context for mutate; keep the
		// write scoped to the subscription row.
		return tx.Omit("Plan").Save(&sub).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) DeleteForUser(ctx context.Context, userID, id uint) error {
	// Hard delete: a soft-deleted row would still hold the user_id unique
	// slot and block the user from ever subscribing again.
	result := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&model.Subscription{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) ListExpired(ctx context.Context, now time.Time) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.WithContext(ctx).
		Where("end_date < ? AND auto_renew = ?", now, false).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// DeleteIfExpired re-checks the expiry predicate in the WHERE clause; a row
// renewed between the sweep's read and this delete is left untouched.
func (r *subscriptionRepository) DeleteIfExpired(ctx context.Context, id uint, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND end_date < ? AND auto_renew = ?", id, now, false).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
