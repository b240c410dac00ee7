package subscription

import (
	"fmt"
	"time"

	"subhub_backend/internal/model"
)

// Renewal opens this long before expiry. The monthly window is shorter in
// proportion to its billing cycle; longer plans share a flat 30 days. These
// values are deliberate per-plan policy, not a percentage of duration.
var renewalWindows = map[string]time.Duration{
	model.PlanMonthly:   7 * 24 * time.Hour,
	model.PlanQuarterly: 30 * 24 * time.Hour,
	model.PlanBiYearly:  30 * 24 * time.Hour,
	model.PlanYearly:    30 * 24 * time.Hour,
}

func renewalWindow(planName string) (time.Duration, error) {
	window, ok := renewalWindows[planName]
	if !ok {
		return 0, fmt.Errorf("no renewal window configured for plan %q", planName)
	}
	return window, nil
}
