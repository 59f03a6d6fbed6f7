package handlers

import (
	"errors"
	"net/http"
	"strconv"

	dom "tailspin/internal/domain"
	"tailspin/internal/dto"
	"tailspin/internal/service"

	"github.com/gin-gonic/gin"
)

// GameHandler serves the legacy /api/games surface: bare JSON, no envelope.
type GameHandler struct {
	svc *service.GameService
}

// NewGameHandler returns a new GameHandler.
func NewGameHandler(svc *service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// parseID reads the :id path param; writes a bare 400 and returns ok=false on garbage.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// gameError maps service errors onto the legacy bare error shape.
func gameError(c *gin.Context, err error) {
	var ve service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case errors.Is(err, service.ErrPublisherNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Publisher not found"})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}

// List godoc
// @Summary      List all games
// @Tags         games
// @Produce      json
// @Success      200  {array}  dto.GameResponse
// @Router       /games [get]
func (h *GameHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}
	c.JSON(http.StatusOK, dto.GamesToResponses(list))
}

// GetByID godoc
// @Summary      Get a game by ID
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  dto.GameResponse
// @Failure      404  {object}  map[string]string
// @Router       /games/{id} [get]
func (h *GameHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	g, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GameToResponse(g))
}

// Create godoc
// @Summary      Create a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateGameRequest  true  "Game body"
// @Success      201   {object}  dto.GameResponse
// @Failure      400   {object}  map[string]string
// @Router       /games [post]
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	if missing := missingGameFields(req); missing != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + missing})
		return
	}

	g, err := h.svc.Create(c.Request.Context(), dom.Game{
		Title:       req.Title,
		Description: req.Description,
		StarRating:  req.StarRating,
		PublisherID: req.PublisherID,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GameToResponse(g))
}

func missingGameFields(req dto.CreateGameRequest) string {
	switch {
	case req.Title == "":
		return "title"
	case req.Description == "":
		return "description"
	case req.PublisherID == 0:
		return "publisher_id"
	case req.CategoryID == 0:
		return "category_id"
	}
	return ""
}

// Update godoc
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Game ID"
// @Param        body  body      dto.UpdateGameRequest  true  "Partial update"
// @Success      200   {object}  dto.GameResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /games/{id} [put]
func (h *GameHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}

	g, err := h.svc.Update(c.Request.Context(), id, req.Title, req.Description, req.StarRating, req.PublisherID, req.CategoryID)
	if err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GameToResponse(g))
}

// Delete godoc
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /games/{id} [delete]
func (h *GameHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		gameError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted successfully"})
}
