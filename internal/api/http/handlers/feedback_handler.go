package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// FeedbackHandler exposes order reviews.
type FeedbackHandler struct {
	feedback *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedback *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Submit handles POST /api/reviews/feedback: a customer reviews their own
// order.
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleAuthenticated, ""); err != nil {
		return err
	}
	if user.Role != domain.RoleCustomer {
		return apperrors.NewForbidden("customer access required")
	}

	var req dto.SubmitFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	feedback, err := h.feedback.Submit(c.UserContext(), user, req.OrderID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFeedbackResponse(feedback)})
}

// List handles GET /api/reviews/feedbacks: the public review list.
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	feedbacks, err := h.feedback.List(c.UserContext())
	if err != nil {
		return err
	}

	responses := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		responses = append(responses, dto.NewFeedbackResponse(&feedbacks[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}
