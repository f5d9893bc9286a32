package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-catalog/internal/api/dto"
	"github.com/spec-kit/movie-catalog/internal/domain"
	"github.com/spec-kit/movie-catalog/internal/service"
	apperrors "github.com/spec-kit/movie-catalog/pkg/util"
)

// MoviesHandler exposes catalog endpoints.
type MoviesHandler struct {
	service *service.MovieService
}

// NewMoviesHandler constructs handler.
func NewMoviesHandler(movieService *service.MovieService) *MoviesHandler {
	return &MoviesHandler{service: movieService}
}

// List GET /api/movies.
func (h *MoviesHandler) List(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), 10)

	movies, err := h.service.List(c.UserContext(), page, limit)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": movieResponses(movies)})
}

// Search GET /api/movies/search.
func (h *MoviesHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apperrors.NewValidationError("query parameter q required", nil)
	}

	movies, err := h.service.Search(c.UserContext(), query)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": movieResponses(movies)})
}

// Get GET /api/movies/:id.
func (h *MoviesHandler) Get(c *fiber.Ctx) error {
	movie, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.MovieFromDomain(movie)})
}

// Create POST /api/movies.
func (h *MoviesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Genre == "" || req.Rating == nil || req.Link == "" {
		return apperrors.NewValidationError("title, genre, rating, link required", nil)
	}

	movie := &domain.Movie{
		Title:  req.Title,
		Genre:  req.Genre,
		Rating: *req.Rating,
		Link:   req.Link,
	}
	if err := h.service.Create(c.UserContext(), movie); err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "movie added successfully",
		"data":    dto.MovieFromDomain(movie),
	})
}

// Update PUT /api/movies/:id.
func (h *MoviesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateMovieRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == nil && req.Genre == nil && req.Rating == nil && req.Link == nil {
		return apperrors.NewValidationError("no fields to update", nil)
	}

	update := domain.MovieUpdate{
		Title:  req.Title,
		Genre:  req.Genre,
		Rating: req.Rating,
		Link:   req.Link,
	}
	if err := h.service.Update(c.UserContext(), c.Params("id"), update); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "movie updated successfully"})
}

// Delete DELETE /api/movies/:id.
func (h *MoviesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"message": "movie deleted successfully"})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func movieResponses(movies []domain.Movie) []dto.MovieResponse {
	items := make([]dto.MovieResponse, 0, len(movies))
	for i := range movies {
		items = append(items, dto.MovieFromDomain(&movies[i]))
	}
	return items
}
