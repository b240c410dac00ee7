package model

import "gorm.io/gorm"

// Plan names form a closed set; plans are seeded reference data.
const (
	PlanMonthly   = "monthly"
	PlanQuarterly = "quarterly"
	PlanBiYearly  = "bi_yearly"
	PlanYearly    = "yearly"
)

type Plan struct {
	gorm.Model
	Name         string  `json:"name" gorm:"uniqueIndex;not null"`
	Price        float64 `json:"price" gorm:"not null"`
	DurationDays int     `json:"duration_days" gorm:"not null"`
}
