package controller

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"subhub_backend/internal/model"
)

// SubscriptionService is the lifecycle engine surface the HTTP layer calls.
type SubscriptionService interface {
	Create(ctx context.Context, userID uint, planName string, autoRenew bool) (*model.Subscription, error)
	Renew(ctx context.Context, userID, subID uint) (time.Time, error)
	Get(ctx context.Context, userID, subID uint) (*model.Subscription, error)
	GetByUser(ctx context.Context, userID uint) (*model.Subscription, error)
	List(ctx context.Context) ([]model.Subscription, error)
	Delete(ctx context.Context, userID, subID uint) error
}

// ExpirySweeper is the scheduled job's entry point, also exposed for manual
// triggering by administrators.
type ExpirySweeper interface {
	Sweep(ctx context.Context) int
}

type SubscriptionInput struct {
	PlanName  string `json:"plan_name" validate:"required,oneof=monthly quarterly bi_yearly yearly"`
	AutoRenew bool   `json:"auto_renew"`
}

type SubscriptionController struct {
	service SubscriptionService
	sweeper ExpirySweeper
}

func NewSubscriptionController(service SubscriptionService, sweeper ExpirySweeper) *SubscriptionController {
	return &SubscriptionController{service: service, sweeper: sweeper}
}

// Subscribe creates a subscription for the authenticated user.
func (ctl *SubscriptionController) Subscribe(c *fiber.Ctx) error {
	input := new(SubscriptionInput)
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

	claims := currentUser(c)
	sub, err := ctl.service.Create(c.UserContext(), claims.UserID, input.PlanName, input.AutoRenew)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetMySubscription returns the authenticated user's subscription.
func (ctl *SubscriptionController) GetMySubscription(c *fiber.Ctx) error {
	claims := currentUser(c)

	sub, err := ctl.service.GetByUser(c.UserContext(), claims.UserID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(sub)
}

// GetSubscription returns a subscription by id, scoped to its owner.
func (ctl *SubscriptionController) GetSubscription(c *fiber.Ctx) error {
	claims := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found",
		})
	}

	sub, err := ctl.service.Get(c.UserContext(), claims.UserID, id)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(sub)
}

// ListSubscriptions returns every subscription. Administrative.
func (ctl *SubscriptionController) ListSubscriptions(c *fiber.Ctx) error {
	subs, err := ctl.service.List(c.UserContext())
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(subs)
}

// RenewSubscription extends the subscription when the renewal window allows.
func (ctl *SubscriptionController) RenewSubscription(c *fiber.Ctx) error {
	claims := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found",
		})
	}

	newEnd, err := ctl.service.Renew(c.UserContext(), claims.UserID, id)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":      "Subscription renewed successfully",
		"new_end_date": newEnd,
	})
}

// DeleteSubscription removes the subscription, scoped to its owner.
func (ctl *SubscriptionController) DeleteSubscription(c *fiber.Ctx) error {
	claims := currentUser(c)
	id, ok := parseIDParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found",
		})
	}

	if err := ctl.service.Delete(c.UserContext(), claims.UserID, id); err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SweepExpired triggers the expiry sweep on demand. Administrative.
func (ctl *SubscriptionController) SweepExpired(c *fiber.Ctx) error {
	deactivated := ctl.sweeper.Sweep(c.UserContext())

	return c.JSON(fiber.Map{
		"deactivated": deactivated,
	})
}
