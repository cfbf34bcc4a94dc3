package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/daniil-kharaman/movie-web-app/internal/models"
	"github.com/daniil-kharaman/movie-web-app/internal/service"
)

// MovieHandler handles HTTP requests for a user's movie list.
type MovieHandler struct {
	svc *service.LibraryService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.LibraryService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// ListMovies returns the movie list of a user.
// @Summary List a user's movies
// @Tags movies
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/movies [get]
func (h *MovieHandler) ListMovies(c fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	movies, err := h.svc.ListMovies(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movies)
}

// GetMovie returns a single movie by id.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path int true "User ID"
// @Param movie_id path int true "Movie ID"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/movies/{movie_id} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movie_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	movie, err := h.svc.GetMovie(c.Context(), movieID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movie)
}

// AddMovie adds a movie to a user's list by title. Metadata comes from
// the external lookup. Recommended entries are accepted through the
// same flow under /movies/recommended.
// @Summary Add movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.AddMovieRequest true "Movie title"
// @Success 201 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /users/{id}/movies [post]
func (h *MovieHandler) AddMovie(c fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid user ID"})
	}

	var req models.AddMovieRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	movie, err := h.svc.AddMovie(c.Context(), userID, req.Title)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// UpdateMovie validates the submitted fields and fully overwrites a
// movie. Fields arrive as raw strings; blank optional fields clear the
// stored value.
// @Summary Update movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param movie_id path int true "Movie ID"
// @Param request body models.UpdateMovieRequest true "Movie fields"
// @Success 200 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/movies/{movie_id} [put]
func (h *MovieHandler) UpdateMovie(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movie_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	var req models.UpdateMovieRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	movie, err := h.svc.UpdateMovie(c.Context(), movieID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movie)
}

// DeleteMovie removes a movie from a user's list.
// @Summary Delete movie
// @Tags movies
// @Produce json
// @Param id path int true "User ID"
// @Param movie_id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/movies/{movie_id} [delete]
func (h *MovieHandler) DeleteMovie(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movie_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	if err := h.svc.DeleteMovie(c.Context(), movieID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
