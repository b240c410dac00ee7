package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"subhub_backend/internal/model"
)

func TestRenewalWindows(t *testing.T) {
	tests := []struct {
		plan string
		want time.Duration
	}{
		{plan: model.PlanMonthly, want: 7 * 24 * time.Hour},
		{plan: model.PlanQuarterly, want: 30 * 24 * time.Hour},
		{plan: model.PlanBiYearly, want: 30 * 24 * time.Hour},
		{plan: model.PlanYearly, want: 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		got, err := renewalWindow(tt.plan)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got, "window for %s", tt.plan)
	}
}

func TestRenewalWindowUnknownPlan(t *testing.T) {
	_, err := renewalWindow("weekly")
	assert.Error(t, err)
}
