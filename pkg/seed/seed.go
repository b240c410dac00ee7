package seed

import (
	"log"

	"gorm.io/gorm"

	"subhub_backend/internal/model"
)

// SeedSubscriptionPlans inserts the reference plans if they are missing.
func SeedSubscriptionPlans(db *gorm.DB) {
	plans := []model.Plan{
		{Name: model.PlanMonthly, Price: 10.00, DurationDays: 30},
		{Name: model.PlanQuarterly, Price: 25.00, DurationDays: 90},
		{Name: model.PlanBiYearly, Price: 45.00, DurationDays: 180},
		{Name: model.PlanYearly, Price: 80.00, DurationDays: 365},
	}

	for _, plan := range plans {
		result := db.FirstOrCreate(&plan, model.Plan{Name: plan.Name})
		if result.Error != nil {
			log.Printf("Error creating plan %s: %v", plan.Name, result.Error)
		}
	}

	log.Println("Subscription plans seeded successfully!")
}
