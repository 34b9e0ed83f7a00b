package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/partwall/partwall-golang/internal/apperr"
	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/models"
)

const caseColumns = "id, wall_id, name, pos_x, pos_y, width, height, template_id, created_at, updated_at"

func scanCase(row interface{ Scan(...interface{}) error }) (*models.Case, error) {
	var cs models.Case
	err := row.Scan(
		&cs.ID, &cs.WallID, &cs.Name, &cs.PosX, &cs.PosY,
		&cs.Width, &cs.Height, &cs.TemplateID, &cs.CreatedAt, &cs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (h *Handlers) fetchCase(id int64) (*models.Case, error) {
	cs, err := scanCase(h.DB.QueryRow("SELECT "+caseColumns+" FROM cases WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("case not found")
		}
		return nil, err
	}
	return cs, nil
}

// GetCases is the handler for GET /cases with an optional ?wall= filter.
func (h *Handlers) GetCases(c *gin.Context) {
	query := "SELECT " + caseColumns + " FROM cases"
	args := []interface{}{}

	if wallID := c.Query("wall"); wallID != "" {
		query += " WHERE wall_id = ?"
		args = append(args, wallID)
	}
	query += " ORDER BY name ASC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	cases := []models.Case{}
	for rows.Next() {
		cs, err := scanCase(rows)
		if err != nil {
			fail(c, err)
			return
		}
		cases = append(cases, *cs)
	}

	respond(c, http.StatusOK, cases)
}

// GetCase is the handler for GET /cases/:id
func (h *Handlers) GetCase(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	cs, err := h.fetchCase(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, cs)
}

// CreateCase is the handler for POST /cases
// A nonexistent wallId trips the FK and maps to INVALID_REFERENCE.
func (h *Handlers) CreateCase(c *gin.Context) {
	var input models.CreateCaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO cases (wall_id, name, pos_x, pos_y, width, height, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		input.WallID, input.Name, input.PosX, input.PosY, input.Width, input.Height, now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	cs := models.Case{
		ID: id, WallID: input.WallID, Name: input.Name,
		PosX: input.PosX, PosY: input.PosY, Width: input.Width, Height: input.Height,
		CreatedAt: now, UpdatedAt: now,
	}

	h.publish("case", events.ActionCreated, id)
	respond(c, http.StatusCreated, cs)
}

// UpdateCase is the handler for PUT /cases/:id
func (h *Handlers) UpdateCase(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateCaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchCase(id); err != nil {
		fail(c, err)
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.WallID != nil {
		querySet += ", wall_id = ?"
		queryArgs = append(queryArgs, *input.WallID)
	}
	if input.Name != nil {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *input.Name)
	}
	if input.Width != nil {
		querySet += ", width = ?"
		queryArgs = append(queryArgs, *input.Width)
	}
	if input.Height != nil {
		querySet += ", height = ?"
		queryArgs = append(queryArgs, *input.Height)
	}
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE cases SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	cs, err := h.fetchCase(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("case", events.ActionUpdated, id)
	respond(c, http.StatusOK, cs)
}

// UpdateCasePosition is the handler for PUT /cases/:id/position
// Only pos_x/pos_y are touched.
func (h *Handlers) UpdateCasePosition(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateCasePositionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	res, err := h.DB.Exec(
		"UPDATE cases SET pos_x = ?, pos_y = ?, updated_at = ? WHERE id = ?",
		*input.PosX, *input.PosY, time.Now(), id,
	)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := h.fetchCase(id); err != nil {
			fail(c, err)
			return
		}
		// Row exists, the position just did not change.
	}

	h.publish("case", events.ActionMoved, id)
	respond(c, http.StatusOK, gin.H{"id": id, "posX": *input.PosX, "posY": *input.PosY})
}

// DeleteCase is the handler for DELETE /cases/:id
// Rejected with INVALID_REFERENCE while drawers remain in the case.
func (h *Handlers) DeleteCase(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM cases WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("case not found"))
		return
	}

	h.publish("case", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}

// ApplyTemplate is the handler for POST /cases/:id/apply-template
// The case's drawer set is replaced by the template's slots in a single
// transaction: parts in removed drawers become unassigned, and each
// slot becomes a fresh drawer copying the slot's size and position.
func (h *Handlers) ApplyTemplate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.ApplyTemplateInput
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

	// Lock the case row for the duration of the swap.
	var caseID int64
	if err := tx.QueryRow("SELECT id FROM cases WHERE id = ? FOR UPDATE", id).Scan(&caseID); err != nil {
		if err == sql.ErrNoRows {
			fail(c, apperr.NotFound("case not found"))
			return
		}
		fail(c, err)
		return
	}

	var slotsJSON []byte
	err = tx.QueryRow("SELECT slots FROM layout_templates WHERE id = ?", input.TemplateID).Scan(&slotsJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			fail(c, apperr.InvalidReference("layout template does not exist"))
			return
		}
		fail(c, err)
		return
	}

	var slots []models.TemplateSlot
	if err := json.Unmarshal(slotsJSON, &slots); err != nil {
		fail(c, err)
		return
	}

	// Parts in the old drawers go to the unassigned pool via the
	// ON DELETE SET NULL foreign key.
	if _, err := tx.Exec("DELETE FROM drawers WHERE case_id = ?", id); err != nil {
		fail(c, err)
		return
	}

	now := time.Now()
	drawers := make([]models.Drawer, 0, len(slots))
	for _, slot := range slots {
		res, err := tx.Exec(
			"INSERT INTO drawers (case_id, size_id, row_pos, col_pos, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			id, slot.SizeID, slot.Row, slot.Col, now, now,
		)
		if err != nil {
			fail(c, err)
			return
		}
		drawerID, _ := res.LastInsertId()
		drawers = append(drawers, models.Drawer{
			ID: drawerID, CaseID: id, SizeID: slot.SizeID,
			Row: slot.Row, Col: slot.Col,
			CreatedAt: now, UpdatedAt: now, CategoryIDs: []int64{},
		})
	}

	if _, err := tx.Exec("UPDATE cases SET template_id = ?, updated_at = ? WHERE id = ?", input.TemplateID, now, id); err != nil {
		fail(c, err)
		return
	}

	if err := tx.Commit(); err != nil {
		fail(c, err)
		return
	}

	h.publish("case", events.ActionUpdated, id)
	respond(c, http.StatusOK, gin.H{
		"caseId":     id,
		"templateId": input.TemplateID,
		"drawers":    drawers,
	})
}
