package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/partwall/partwall-golang/internal/apperr"
	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/models"
)

const drawerColumns = "id, case_id, size_id, row_pos, col_pos, label, created_at, updated_at"

func scanDrawer(row interface{ Scan(...interface{}) error }) (*models.Drawer, error) {
	var d models.Drawer
	err := row.Scan(&d.ID, &d.CaseID, &d.SizeID, &d.Row, &d.Col, &d.Label, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.CategoryIDs = []int64{}
	return &d, nil
}

func (h *Handlers) fetchDrawer(id int64) (*models.Drawer, error) {
	d, err := scanDrawer(h.DB.QueryRow("SELECT "+drawerColumns+" FROM drawers WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("drawer not found")
		}
		return nil, err
	}

	rows, err := h.DB.Query("SELECT category_id FROM drawer_categories WHERE drawer_id = ? ORDER BY category_id ASC", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var catID int64
		if err := rows.Scan(&catID); err != nil {
			return nil, err
		}
		d.CategoryIDs = append(d.CategoryIDs, catID)
	}
	return d, nil
}

// GetDrawers is the handler for GET /drawers with an optional ?case= filter.
func (h *Handlers) GetDrawers(c *gin.Context) {
	query := "SELECT " + drawerColumns + " FROM drawers"
	args := []interface{}{}

	if caseID := c.Query("case"); caseID != "" {
		query += " WHERE case_id = ?"
		args = append(args, caseID)
	}
	query += " ORDER BY row_pos ASC, col_pos ASC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	drawers := []models.Drawer{}
	index := map[int64]int{}
	for rows.Next() {
		d, err := scanDrawer(rows)
		if err != nil {
			fail(c, err)
			return
		}
		index[d.ID] = len(drawers)
		drawers = append(drawers, *d)
	}

	// One pass over the association table instead of a query per drawer.
	if len(drawers) > 0 {
		catRows, err := h.DB.Query("SELECT drawer_id, category_id FROM drawer_categories ORDER BY category_id ASC")
		if err != nil {
			fail(c, err)
			return
		}
		defer catRows.Close()
		for catRows.Next() {
			var drawerID, catID int64
			if err := catRows.Scan(&drawerID, &catID); err != nil {
				fail(c, err)
				return
			}
			if i, ok := index[drawerID]; ok {
				drawers[i].CategoryIDs = append(drawers[i].CategoryIDs, catID)
			}
		}
	}

	respond(c, http.StatusOK, drawers)
}

// GetDrawer is the handler for GET /drawers/:id
func (h *Handlers) GetDrawer(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	d, err := h.fetchDrawer(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, d)
}

// CreateDrawer is the handler for POST /drawers
// Nonexistent caseId or sizeId trips the FK and maps to INVALID_REFERENCE.
func (h *Handlers) CreateDrawer(c *gin.Context) {
	var input models.CreateDrawerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO drawers (case_id, size_id, row_pos, col_pos, label, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		input.CaseID, input.SizeID, input.Row, input.Col, input.Label, now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	d := models.Drawer{
		ID: id, CaseID: input.CaseID, SizeID: input.SizeID,
		Row: input.Row, Col: input.Col, Label: input.Label,
		CreatedAt: now, UpdatedAt: now, CategoryIDs: []int64{},
	}

	h.publish("drawer", events.ActionCreated, id)
	respond(c, http.StatusCreated, d)
}

// UpdateDrawer is the handler for PUT /drawers/:id
func (h *Handlers) UpdateDrawer(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateDrawerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchDrawer(id); err != nil {
		fail(c, err)
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.SizeID != nil {
		querySet += ", size_id = ?"
		queryArgs = append(queryArgs, *input.SizeID)
	}
	if input.Label != nil {
		querySet += ", label = ?"
		queryArgs = append(queryArgs, *input.Label)
	}
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE drawers SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	d, err := h.fetchDrawer(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("drawer", events.ActionUpdated, id)
	respond(c, http.StatusOK, d)
}

// MoveDrawer is the handler for PUT /drawers/:id/move
// Reassigns the owning case and/or slot position in one transaction.
// A nonexistent target case trips the FK, the transaction rolls back
// and the drawer keeps its prior location.
func (h *Handlers) MoveDrawer(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.MoveDrawerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		fail(c, err)
		return
	}
	defer tx.Rollback()

	var drawerID int64
	if err := tx.QueryRow("SELECT id FROM drawers WHERE id = ? FOR UPDATE", id).Scan(&drawerID); err != nil {
		if err == sql.ErrNoRows {
			fail(c, apperr.NotFound("drawer not found"))
			return
		}
		fail(c, err)
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.CaseID != nil {
		querySet += ", case_id = ?"
		queryArgs = append(queryArgs, *input.CaseID)
	}
	if input.Row != nil {
		querySet += ", row_pos = ?"
		queryArgs = append(queryArgs, *input.Row)
	}
	if input.Col != nil {
		querySet += ", col_pos = ?"
		queryArgs = append(queryArgs, *input.Col)
	}
	queryArgs = append(queryArgs, id)

	if _, err := tx.Exec("UPDATE drawers SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	if err := tx.Commit(); err != nil {
		fail(c, err)
		return
	}

	d, err := h.fetchDrawer(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("drawer", events.ActionMoved, id)
	respond(c, http.StatusOK, d)
}

// DeleteDrawer is the handler for DELETE /drawers/:id
// Parts in the drawer become unassigned (FK SET NULL); category
// associations are dropped by the cascade.
func (h *Handlers) DeleteDrawer(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM drawers WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("drawer not found"))
		return
	}

	h.publish("drawer", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}

// AddDrawerCategory is the handler for POST /drawers/:id/categories
// The composite primary key guards against duplicate pairs; the second
// insert of the same pair maps to DUPLICATE_ENTRY.
func (h *Handlers) AddDrawerCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.AddDrawerCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.DB.Exec(
		"INSERT INTO drawer_categories (drawer_id, category_id, created_at) VALUES (?, ?, ?)",
		id, input.CategoryID, time.Now(),
	); err != nil {
		fail(c, err)
		return
	}

	h.publish("drawer", events.ActionUpdated, id)
	respond(c, http.StatusCreated, gin.H{"drawerId": id, "categoryId": input.CategoryID})
}

// RemoveDrawerCategory is the handler for DELETE /drawers/:id/categories/:categoryId
func (h *Handlers) RemoveDrawerCategory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	categoryID, err := idParam(c, "categoryId")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM drawer_categories WHERE drawer_id = ? AND category_id = ?", id, categoryID)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("category association not found"))
		return
	}

	h.publish("drawer", events.ActionUpdated, id)
	respond(c, http.StatusOK, gin.H{"drawerId": id, "categoryId": categoryID})
}
