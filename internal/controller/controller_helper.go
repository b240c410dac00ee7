package controller

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"subhub_backend/pkg/plan"
	"subhub_backend/pkg/subscription"
	"subhub_backend/pkg/utils/jwt"
)

var validate = validator.New()

// currentUser returns the identity context attached by AuthMiddleware.
func currentUser(c *fiber.Ctx) *jwt.Claims {
	return c.Locals("user").(*jwt.Claims)
}

// parseIDParam parses the :id route parameter. A non-numeric id is treated
// the same as an unknown one.
func parseIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// fieldErrors flattens validator output into a per-field error list.
func fieldErrors(err error) []fiber.Map {
	fields := []fiber.Map{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fiber.Map{
				"field": fe.Field(),
				"rule":  fe.Tag(),
			})
		}
	}
	return fields
}

// serviceErrorResponse maps lifecycle errors onto HTTP statuses. Anything
// unexpected is logged with its context and answered with a fixed body so
// internal error text never reaches the caller.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, plan.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription plan not found",
		})
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Subscription not found",
		})
	case errors.Is(err, subscription.ErrActiveSubscriptionExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "User already has an active subscription.",
		})
	case errors.Is(err, subscription.ErrNotEligible):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Subscription not eligible for renewal yet",
		})
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Storage temporarily unavailable, please retry",
		})
	default:
		log.Printf("Internal error on %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "An internal error occurred",
		})
	}
}
