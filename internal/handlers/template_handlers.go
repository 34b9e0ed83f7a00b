package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/partwall/partwall-golang/internal/apperr"
	"github.com/partwall/partwall-golang/internal/events"
	"github.com/partwall/partwall-golang/internal/models"
)

// --- Layout Templates ---

func (h *Handlers) fetchTemplate(id int64) (*models.LayoutTemplate, error) {
	var t models.LayoutTemplate
	var slotsJSON []byte
	err := h.DB.QueryRow(
		"SELECT id, name, description, slots, created_at, updated_at FROM layout_templates WHERE id = ?", id,
	).Scan(&t.ID, &t.Name, &t.Description, &slotsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("layout template not found")
		}
		return nil, err
	}
	if err := json.Unmarshal(slotsJSON, &t.Slots); err != nil {
		return nil, err
	}
	return &t, nil
}

// validateSlotSizes checks that every sizeId referenced by the slots
// exists, so a template can never be saved pointing at a phantom size.
func (h *Handlers) validateSlotSizes(slots []models.TemplateSlot) error {
	seen := map[int64]bool{}
	ids := []interface{}{}
	for _, slot := range slots {
		if !seen[slot.SizeID] {
			seen[slot.SizeID] = true
			ids = append(ids, slot.SizeID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	var count int
	err := h.DB.QueryRow(
		"SELECT COUNT(*) FROM drawer_sizes WHERE id IN ("+placeholders+")", ids...,
	).Scan(&count)
	if err != nil {
		return err
	}
	if count != len(ids) {
		return apperr.InvalidReference("one or more slot sizeIds do not exist")
	}
	return nil
}

// GetTemplates is the handler for GET /layout-templates
func (h *Handlers) GetTemplates(c *gin.Context) {
	rows, err := h.DB.Query("SELECT id, name, description, slots, created_at, updated_at FROM layout_templates ORDER BY name ASC")
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	templates := []models.LayoutTemplate{}
	for rows.Next() {
		var t models.LayoutTemplate
		var slotsJSON []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &slotsJSON, &t.CreatedAt, &t.UpdatedAt); err != nil {
			fail(c, err)
			return
		}
		if err := json.Unmarshal(slotsJSON, &t.Slots); err != nil {
			fail(c, err)
			return
		}
		templates = append(templates, t)
	}

	respond(c, http.StatusOK, templates)
}

// GetTemplate is the handler for GET /layout-templates/:id
func (h *Handlers) GetTemplate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	t, err := h.fetchTemplate(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, t)
}

// CreateTemplate is the handler for POST /layout-templates
// A duplicate name maps to DUPLICATE_ENTRY via the unique key.
func (h *Handlers) CreateTemplate(c *gin.Context) {
	var input models.CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if err := h.validateSlotSizes(input.Slots); err != nil {
		fail(c, err)
		return
	}

	slotsJSON, err := json.Marshal(input.Slots)
	if err != nil {
		fail(c, err)
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO layout_templates (name, description, slots, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		input.Name, input.Description, string(slotsJSON), now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	t := models.LayoutTemplate{
		ID: id, Name: input.Name, Description: input.Description,
		Slots: input.Slots, CreatedAt: now, UpdatedAt: now,
	}

	h.publish("layout-template", events.ActionCreated, id)
	respond(c, http.StatusCreated, t)
}

// UpdateTemplate is the handler for PUT /layout-templates/:id
func (h *Handlers) UpdateTemplate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchTemplate(id); err != nil {
		fail(c, err)
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Name != nil {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *input.Name)
	}
	if input.Description != nil {
		querySet += ", description = ?"
		queryArgs = append(queryArgs, *input.Description)
	}
	if input.Slots != nil {
		if err := h.validateSlotSizes(*input.Slots); err != nil {
			fail(c, err)
			return
		}
		slotsJSON, err := json.Marshal(*input.Slots)
		if err != nil {
			fail(c, err)
			return
		}
		querySet += ", slots = ?"
		queryArgs = append(queryArgs, string(slotsJSON))
	}
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE layout_templates SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	t, err := h.fetchTemplate(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("layout-template", events.ActionUpdated, id)
	respond(c, http.StatusOK, t)
}

// DeleteTemplate is the handler for DELETE /layout-templates/:id
// Cases keep working: their template_id is nulled by the FK.
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM layout_templates WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("layout template not found"))
		return
	}

	h.publish("layout-template", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}
