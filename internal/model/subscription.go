package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription ties a user to a plan for a fixed period. The unique index on
// UserID enforces at most one subscription per user at the storage layer.
type Subscription struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	PlanID    uint      `json:"plan_id" gorm:"not null"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	AutoRenew bool      `json:"auto_renew" gorm:"default:false"`

	Plan Plan `json:"plan" gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// IsActive reports whether the subscription has not yet expired at the given
// instant. The instant must come from the injected clock, never time.Now.
func (s *Subscription) IsActive(now time.Time) bool {
	return !s.EndDate.Before(now)
}
