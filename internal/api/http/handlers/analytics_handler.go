package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AnalyticsHandler exposes manager reporting over a date range.
type AnalyticsHandler struct {
	analytics repository.AnalyticsRepository
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics repository.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Rating handles GET /api/analytics/rating?start=&end=.
func (h *AnalyticsHandler) Rating(c *fiber.Ctx) error {
	start, end, err := h.authorizeRange(c)
	if err != nil {
		return err
	}

	avg, count, err := h.analytics.AverageRating(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"average_rating": avg,
		"feedback_count": count,
	}})
}

// Revenue handles GET /api/analytics/revenue?start=&end=.
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	start, end, err := h.authorizeRange(c)
	if err != nil {
		return err
	}

	revenue, err := h.analytics.Revenue(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"revenue": revenue}})
}

// OrderCount handles GET /api/analytics/order-count?start=&end=.
func (h *AnalyticsHandler) OrderCount(c *fiber.Ctx) error {
	start, end, err := h.authorizeRange(c)
	if err != nil {
		return err
	}

	count, err := h.analytics.OrderCount(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"order_count": count}})
}

func (h *AnalyticsHandler) authorizeRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	if err := auth.Authorize(auth.IdentityFromContext(c), auth.RuleManagerOnly, ""); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return dateRange(c.Query("start"), c.Query("end"), time.Now())
}

// dateRange parses optional YYYY-MM-DD bounds. An absent start means
// "since forever"; an absent end means "through today". The returned
// range is [start, end), so the end date is bumped by one day to make
// it inclusive.
func dateRange(startRaw, endRaw string, now time.Time) (time.Time, time.Time, error) {
	var start time.Time
	if startRaw != "" {
		parsed, err := parseDate(startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError("invalid start date; want YYYY-MM-DD", nil)
		}
		start = parsed
	}

	end := now.UTC().Truncate(24 * time.Hour)
	if endRaw != "" {
		parsed, err := parseDate(endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, apperrors.NewValidationError("invalid end date; want YYYY-MM-DD", nil)
		}
		end = parsed
	}
	return start, end.AddDate(0, 0, 1), nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
