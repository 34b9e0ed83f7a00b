package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/partwall/partwall-golang/internal/apperr"
	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/models"
)

const categoryColumns = "id, name, slug, created_at, updated_at"

func (h *Handlers) fetchCategory(id int64) (*models.Category, error) {
	var cat models.Category
	err := h.DB.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = ?", id).Scan(
		&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("category not found")
		}
		return nil, err
	}
	return &cat, nil
}

// GetCategories is the handler for GET /categories
func (h *Handlers) GetCategories(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + categoryColumns + " FROM categories ORDER BY name ASC")
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			fail(c, err)
			return
		}
		categories = append(categories, cat)
	}

	respond(c, http.StatusOK, categories)
}

// GetCategory is the handler for GET /categories/:id
func (h *Handlers) GetCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	cat, err := h.fetchCategory(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, cat)
}

// CreateCategory is the handler for POST /categories
// The slug is derived from the name; a clashing slug maps to
// DUPLICATE_ENTRY via the unique key.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	catSlug := slug.Make(input.Name)
	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO categories (name, slug, created_at, updated_at) VALUES (?, ?, ?, ?)",
		input.Name, catSlug, now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	cat := models.Category{ID: id, Name: input.Name, Slug: catSlug, CreatedAt: now, UpdatedAt: now}

	h.publish("category", events.ActionCreated, id)
	respond(c, http.StatusCreated, cat)
}

// UpdateCategory is the handler for PUT /categories/:id
// Renaming regenerates the slug.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchCategory(id); err != nil {
		fail(c, err)
		return
	}

	if _, err := h.DB.Exec(
		"UPDATE categories SET name = ?, slug = ?, updated_at = ? WHERE id = ?",
		*input.Name, slug.Make(*input.Name), time.Now(), id,
	); err != nil {
		fail(c, err)
		return
	}

	cat, err := h.fetchCategory(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("category", events.ActionUpdated, id)
	respond(c, http.StatusOK, cat)
}

// DeleteCategory is the handler for DELETE /categories/:id
// Drawer associations are dropped by the cascade.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("category not found"))
		return
	}

	h.publish("category", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}

// GetCategoryDrawers is the handler for GET /categories/:id/drawers
func (h *Handlers) GetCategoryDrawers(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	if _, err := h.fetchCategory(id); err != nil {
		fail(c, err)
		return
	}

	rows, err := h.DB.Query(
		"SELECT d.id, d.case_id, d.size_id, d.row_pos, d.col_pos, d.label, d.created_at, d.updated_at "+
			"FROM drawers d JOIN drawer_categories dc ON d.id = dc.drawer_id "+
			"WHERE dc.category_id = ? ORDER BY d.id ASC", id,
	)
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	drawers := []models.Drawer{}
	for rows.Next() {
		d, err := scanDrawer(rows)
		if err != nil {
			fail(c, err)
			return
		}
		drawers = append(drawers, *d)
	}

	respond(c, http.StatusOK, drawers)
}
