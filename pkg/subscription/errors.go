package subscription

import "errors"

var (
	// ErrSubscriptionNotFound covers both a missing subscription and one
	// owned by another user, so callers cannot probe for existence.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrActiveSubscriptionExists rejects a create while the user's current
	// subscription has not yet expired.
	ErrActiveSubscriptionExists = errors.New("user already has an active subscription")

	// ErrNotEligible rejects a renewal requested before the plan's renewal
	// window opens. The subscription is left unchanged.
	ErrNotEligible = errors.New("subscription not eligible for renewal yet")
)
