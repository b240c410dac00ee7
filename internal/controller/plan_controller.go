package controller

import (
	"github.com/gofiber/fiber/v2"

	"subhub_backend/internal/model"
	"subhub_backend/pkg/plan"
)

type PlanInput struct {
	Name         string  `json:"name" validate:"required,oneof=monthly quarterly bi_yearly yearly"`
	Price        float64 `json:"price" validate:"gte=0"`
	DurationDays int     `json:"duration_days" validate:"required,gt=0"`
}

type PlanUpdateInput struct {
	Price        float64 `json:"price" validate:"gte=0"`
	DurationDays int     `json:"duration_days" validate:"required,gt=0"`
}

type PlanController struct {
	catalog *plan.Catalog
}

func NewPlanController(catalog *plan.Catalog) *PlanController {
	return &PlanController{catalog: catalog}
}

// ListPlans returns the plan catalog. Public; served from the 15-minute cache.
func (ctl *PlanController) ListPlans(c *fiber.Ctx) error {
	plans, err := ctl.catalog.List(c.UserContext())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(plans)
}

// CreatePlan adds a plan and invalidates the cached list. Administrative.
func (ctl *PlanController) CreatePlan(c *fiber.Ctx) error {
	input := new(PlanInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid input",
			"fields": fieldErrors(err),
		})
	}

	p := &model.Plan{
		Name:         input.Name,
		Price:        input.Price,
		DurationDays: input.DurationDays,
	}
	if err := ctl.catalog.Create(c.UserContext(), p); err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(p)
}

// UpdatePlan changes a plan's price or duration and invalidates the cached
// list. Administrative.
func (ctl *PlanController) UpdatePlan(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription plan not found",
		})
	}

	input := new(PlanUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid input",
			"fields": fieldErrors(err),
		})
	}

	p, err := ctl.catalog.Update(c.UserContext(), id, input.Price, input.DurationDays)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(p)
}

// DeletePlan removes a plan and invalidates the cached list. Administrative.
func (ctl *PlanController) DeletePlan(c *fiber.Ctx) error {
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription plan not found",
		})
	}

	if err := ctl.catalog.Delete(c.UserContext(), id); err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
