package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
	"github.com/RonUpdate/sitecf-sub001/internal/dto"
	"github.com/RonUpdate/sitecf-sub001/internal/repository"
	"github.com/RonUpdate/sitecf-sub001/pkg/response"
)

// AdminHandler serves the capability-gated content management endpoints.
// Authorization happens in the route middleware; the handler assumes the
// caller has already cleared the gate for its route.
type AdminHandler struct {
	categories repository.CategoryRepository
	pages      repository.ColoringPageRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(categories repository.CategoryRepository, pages repository.ColoringPageRepository) *AdminHandler {
	return &AdminHandler{categories: categories, pages: pages}
}

// CreateCategory handles category creation
// POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	category := &domain.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Slug:      req.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Created(c, category)
}

// GetCategory handles category retrieval
// GET /admin/categories/:id
func (h *AdminHandler) GetCategory(c *gin.Context) {
	category, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found")
		return
	}

	response.Success(c, category)
}

// UpdateCategory handles category updates
// PUT /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found")
		return
	}

	category.Name = req.Name
	category.Slug = req.Slug

	if err := h.categories.Update(c.Request.Context(), category); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, category)
}

// DeleteCategory handles category deletion
// DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// CreateColoringPage handles coloring page creation
// POST /admin/pages
func (h *AdminHandler) CreateColoringPage(c *gin.Context) {
	var req dto.ColoringPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	page := &domain.ColoringPage{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Slug:       req.Slug,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		Published:  req.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.pages.Create(c.Request.Context(), page); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Created(c, page)
}

// GetColoringPage handles coloring page retrieval
// GET /admin/pages/:id
func (h *AdminHandler) GetColoringPage(c *gin.Context) {
	page, err := h.pages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c, "Coloring page not found")
		return
	}

	response.Success(c, page)
}

// UpdateColoringPage handles coloring page updates
// PUT /admin/pages/:id
func (h *AdminHandler) UpdateColoringPage(c *gin.Context) {
	var req dto.ColoringPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	page, err := h.pages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c, "Coloring page not found")
		return
	}

	page.Title = req.Title
	page.Slug = req.Slug
	page.CategoryID = req.CategoryID
	page.ImageURL = req.ImageURL
	page.Published = req.Published

	if err := h.pages.Update(c.Request.Context(), page); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, page)
}

// DeleteColoringPage handles coloring page deletion
// DELETE /admin/pages/:id
func (h *AdminHandler) DeleteColoringPage(c *gin.Context) {
	if err := h.pages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
