package handlers

import (
	"errors"
	"net/http"

	"tailspin/internal/dto"
	"tailspin/internal/service"

	"github.com/gin-gonic/gin"
)

// PublisherHandler serves /api/publishers, bare JSON like the games surface.
type PublisherHandler struct {
	svc *service.PublisherService
}

// NewPublisherHandler returns a new PublisherHandler.
func NewPublisherHandler(svc *service.PublisherService) *PublisherHandler {
	return &PublisherHandler{svc: svc}
}

func catalogError(c *gin.Context, err error, notFoundMsg string) {
	var ve service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, service.ErrNameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Database integrity error"})
	case errors.Is(err, service.ErrHasGames):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Database integrity error"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}

// List godoc
// @Summary      List all publishers
// @Tags         publishers
// @Produce      json
// @Success      200  {array}  dto.PublisherResponse
// @Router       /publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}
	c.JSON(http.StatusOK, dto.PublishersToResponses(list))
}

// GetByID godoc
// @Summary      Get a publisher by ID
// @Tags         publishers
// @Produce      json
// @Param        id   path      int  true  "Publisher ID"
// @Success      200  {object}  dto.PublisherResponse
// @Failure      404  {object}  map[string]string
// @Router       /publishers/{id} [get]
func (h *PublisherHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err, "Publisher not found")
		return
	}
	c.JSON(http.StatusOK, dto.PublisherToResponse(p))
}

// Create godoc
// @Summary      Create a publisher
// @Tags         publishers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePublisherRequest  true  "Publisher body"
// @Success      201   {object}  dto.PublisherResponse
// @Failure      400   {object}  map[string]string
// @Router       /publishers [post]
func (h *PublisherHandler) Create(c *gin.Context) {
	var req dto.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: name"})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		catalogError(c, err, "Publisher not found")
		return
	}
	c.JSON(http.StatusCreated, dto.PublisherToResponse(p))
}

// Update godoc
// @Summary      Update a publisher
// @Tags         publishers
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Publisher ID"
// @Param        body  body      dto.UpdatePublisherRequest  true  "Partial update"
// @Success      200   {object}  dto.PublisherResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /publishers/{id} [put]
func (h *PublisherHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		catalogError(c, err, "Publisher not found")
		return
	}
	c.JSON(http.StatusOK, dto.PublisherToResponse(p))
}

// Delete godoc
// @Summary      Delete a publisher
// @Tags         publishers
// @Produce      json
// @Param        id   path      int  true  "Publisher ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /publishers/{id} [delete]
func (h *PublisherHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		catalogError(c, err, "Publisher not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Publisher deleted successfully"})
}

// CategoryHandler serves /api/categories.
type CategoryHandler struct {
	svc *service.CategoryService
}

// NewCategoryHandler returns a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary      List all categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesToResponses(list))
}

// GetByID godoc
// @Summary      Get a category by ID
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ct, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		catalogError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, dto.CategoryToResponse(ct))
}

// Create godoc
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "Category body"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  map[string]string
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: name"})
		return
	}
	ct, err := h.svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		catalogError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryToResponse(ct))
}

// Update godoc
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Category ID"
// @Param        body  body      dto.UpdateCategoryRequest  true  "Partial update"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	ct, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		catalogError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, dto.CategoryToResponse(ct))
}

// Delete godoc
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		catalogError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
