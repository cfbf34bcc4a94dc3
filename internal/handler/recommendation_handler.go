package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/daniil-kharaman/movie-web-app/internal/apperr"
	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/service"
)

// RecommendationHandler handles HTTP requests for AI recommendations.
type RecommendationHandler struct {
	svc *service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// OpenSession opens a recommendation chat session for a user.
// GET /api/v1/users/:id/recommendations
func (h *RecommendationHandler) OpenSession(c fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	if err := h.svc.OpenSession(c.Context(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id": userID,
		"status":  "session open",
	})
}

// Recommend submits a mood and returns poster-enriched recommendations.
// An unparsable chat reply degrades to an empty list with a message,
// not an error status.
// POST /api/v1/users/:id/recommendations
func (h *RecommendationHandler) Recommend(c fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req models.MoodRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	recommendations, err := h.svc.Recommend(c.Context(), userID, req.Mood)
	if err != nil {
		if apperr.KindOf(err) == apperr.Parse {
			slog.Warn("chat reply had no usable recommendations", "user_id", userID, "error", err)
			return c.JSON(models.RecommendationResponse{
				UserID:          userID,
				Recommendations: []models.Recommendation{},
				Message:         apperr.MessageOf(err, "No recommendations found"),
			})
		}
		return respondError(c, err)
	}

	return c.JSON(models.RecommendationResponse{
		UserID:          userID,
		Recommendations: recommendations,
	})
}
