package cron

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"subhub_backend/internal/repository"
	"subhub_backend/pkg/subscription"
)

// Sweeper removes expired subscriptions that are not flagged for auto-renewal.
// Auto-renewing subscriptions are left for the external billing trigger.
type Sweeper struct {
	subs  repository.SubscriptionRepository
	clock subscription.Clock
}

func NewSweeper(subs repository.SubscriptionRepository, clock subscription.Clock) *Sweeper {
	return &Sweeper{subs: subs, clock: clock}
}

// Sweep deletes every expired, non-renewing subscription and returns how many
// were deactivated. Each deletion is independent: a failure is logged and the
// sweep moves on. The delete re-checks expiry, so a record renewed mid-sweep
// is skipped rather than lost.
func (s *Sweeper) Sweep(ctx context.Context) int {
	log.Println("Checking for expired subscriptions...")
	now := s.clock.Now()

	expired, err := s.subs.ListExpired(ctx, now)
	if err != nil {
		log.Printf("Error fetching expired subscriptions: %v", err)
		return 0
	}

	deactivated := 0
	for _, sub := range expired {
		deleted, err := s.subs.DeleteIfExpired(ctx, sub.ID, now)
		if err != nil {
			log.Printf("Error deleting expired subscription %d: %v", sub.ID, err)
			continue
		}
		if deleted {
			deactivated++
		}
	}

	log.Printf("Deactivated %d expired subscriptions", deactivated)
	return deactivated
}

// InitSubscriptionExpiryCron schedules the sweep on the given cron expression.
func InitSubscriptionExpiryCron(sweeper *Sweeper, schedule string) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		sweeper.Sweep(context.Background())
	})

	if err != nil {
		log.Printf("Could not initialize subscription expiry cron: %v", err)
		return
	}

	c.Start()
}
