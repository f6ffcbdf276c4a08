package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

// memCategoryRepo is an in-memory CategoryRepository
type memCategoryRepo struct {
	rows map[string]*domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{rows: make(map[string]*domain.Category)}
}

func (r *memCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	r.rows[category.ID] = category
	return nil
}

func (r *memCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.rows[id], nil
}

func (r *memCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	r.rows[category.ID] = category
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

// memPageRepo is an in-memory ColoringPageRepository
type memPageRepo struct {
	rows map[string]*domain.ColoringPage
}

func newMemPageRepo() *memPageRepo {
	return &memPageRepo{rows: make(map[string]*domain.ColoringPage)}
}

func (r *memPageRepo) Create(ctx context.Context, page *domain.ColoringPage) error {
	r.rows[page.ID] = page
	return nil
}

func (r *memPageRepo) GetByID(ctx context.Context, id string) (*domain.ColoringPage, error) {
	return r.rows[id], nil
}

func (r *memPageRepo) Update(ctx context.Context, page *domain.ColoringPage) error {
	r.rows[page.ID] = page
	return nil
}

func (r *memPageRepo) Delete(ctx context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func newAdminTestRouter() (*gin.Engine, *memCategoryRepo, *memPageRepo) {
	categories := newMemCategoryRepo()
	pages := newMemPageRepo()
	h := NewAdminHandler(categories, pages)

	r := gin.New()
	r.POST("/admin/categories", h.CreateCategory)
	r.GET("/admin/categories/:id", h.GetCategory)
	r.PUT("/admin/categories/:id", h.UpdateCategory)
	r.DELETE("/admin/categories/:id", h.DeleteCategory)
	r.POST("/admin/pages", h.CreateColoringPage)
	r.GET("/admin/pages/:id", h.GetColoringPage)
	r.PUT("/admin/pages/:id", h.UpdateColoringPage)
	r.DELETE("/admin/pages/:id", h.DeleteColoringPage)
	return r, categories, pages
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCategory(t *testing.T) {
	r, categories, _ := newAdminTestRouter()

	w := doJSON(r, http.MethodPost, "/admin/categories", `{"name":"Animals","slug":"animals"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, categories.rows, 1)

	var resp struct {
		Success bool            `json:"success"`
		Data    domain.Category `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Animals", resp.Data.Name)
	assert.Equal(t, "animals", resp.Data.Slug)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestCreateCategory_MissingName(t *testing.T) {
	r, categories, _ := newAdminTestRouter()

	w := doJSON(r, http.MethodPost, "/admin/categories", `{"slug":"animals"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, categories.rows)
}

func TestUpdateCategory(t *testing.T) {
	r, categories, _ := newAdminTestRouter()
	categories.rows["cat-1"] = &domain.Category{ID: "cat-1", Name: "Animals", Slug: "animals"}

	w := doJSON(r, http.MethodPut, "/admin/categories/cat-1", `{"name":"Wild Animals","slug":"wild-animals"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Wild Animals", categories.rows["cat-1"].Name)
	assert.Equal(t, "wild-animals", categories.rows["cat-1"].Slug)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	r, _, _ := newAdminTestRouter()

	w := doJSON(r, http.MethodPut, "/admin/categories/missing", `{"name":"X","slug":"x"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategory(t *testing.T) {
	r, categories, _ := newAdminTestRouter()
	categories.rows["cat-1"] = &domain.Category{ID: "cat-1", Name: "Animals", Slug: "animals"}

	w := doJSON(r, http.MethodDelete, "/admin/categories/cat-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, categories.rows)
}

func TestColoringPageCRUD(t *testing.T) {
	r, _, pages := newAdminTestRouter()

	w := doJSON(r, http.MethodPost, "/admin/pages",
		`{"title":"Lion","slug":"lion","category_id":"cat-1","image_url":"https://cdn.example.com/lion.png","published":true}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, pages.rows, 1)

	var created struct {
		Data domain.ColoringPage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.ID
	assert.True(t, created.Data.Published)

	w = doJSON(r, http.MethodGet, "/admin/pages/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/admin/pages/"+id,
		`{"title":"Lion Cub","slug":"lion-cub","category_id":"cat-1","published":false}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Lion Cub", pages.rows[id].Title)
	assert.False(t, pages.rows[id].Published)

	w = doJSON(r, http.MethodDelete, "/admin/pages/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, pages.rows)
}

func TestGetColoringPage_NotFound(t *testing.T) {
	r, _, _ := newAdminTestRouter()

	w := doJSON(r, http.MethodGet, "/admin/pages/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
