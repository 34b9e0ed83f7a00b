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

const partColumns = "id, drawer_id, name, description, quantity, min_quantity, created_at, updated_at"

func scanPart(row interface{ Scan(...interface{}) error }) (*models.Part, error) {
	var p models.Part
	err := row.Scan(&p.ID, &p.DrawerID, &p.Name, &p.Description, &p.Quantity, &p.MinQuantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *Handlers) fetchPart(id int64) (*models.Part, error) {
	p, err := scanPart(h.DB.QueryRow("SELECT "+partColumns+" FROM parts WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("part not found")
		}
		return nil, err
	}

	rows, err := h.DB.Query(
		"SELECT id, part_id, link_type, target_part_id, url, title, created_at FROM part_links WHERE part_id = ? ORDER BY id ASC", id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Links = []models.PartLink{}
	for rows.Next() {
		var l models.PartLink
		if err := rows.Scan(&l.ID, &l.PartID, &l.LinkType, &l.TargetPartID, &l.URL, &l.Title, &l.CreatedAt); err != nil {
			return nil, err
		}
		p.Links = append(p.Links, l)
	}
	return p, nil
}

// GetParts is the handler for GET /parts with optional ?drawer= and
// ?unassigned=true filters.
func (h *Handlers) GetParts(c *gin.Context) {
	query := "SELECT " + partColumns + " FROM parts"
	args := []interface{}{}

	if drawerID := c.Query("drawer"); drawerID != "" {
		query += " WHERE drawer_id = ?"
		args = append(args, drawerID)
	} else if c.Query("unassigned") == "true" {
		query += " WHERE drawer_id IS NULL"
	}
	query += " ORDER BY name ASC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	parts := []models.Part{}
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			fail(c, err)
			return
		}
		parts = append(parts, *p)
	}

	respond(c, http.StatusOK, parts)
}

// GetPart is the handler for GET /parts/:id and includes the part's links.
func (h *Handlers) GetPart(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	p, err := h.fetchPart(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, p)
}

// CreatePart is the handler for POST /parts
// drawerId is optional; a part without one starts unassigned.
func (h *Handlers) CreatePart(c *gin.Context) {
	var input models.CreatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO parts (drawer_id, name, description, quantity, min_quantity, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		input.DrawerID, input.Name, input.Description, input.Quantity, input.MinQuantity, now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	p := models.Part{
		ID: id, DrawerID: input.DrawerID, Name: input.Name, Description: input.Description,
		Quantity: input.Quantity, MinQuantity: input.MinQuantity,
		CreatedAt: now, UpdatedAt: now, Links: []models.PartLink{},
	}

	h.publish("part", events.ActionCreated, id)
	respond(c, http.StatusCreated, p)
}

// UpdatePart is the handler for PUT /parts/:id
func (h *Handlers) UpdatePart(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchPart(id); err != nil {
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
	if input.Quantity != nil {
		querySet += ", quantity = ?"
		queryArgs = append(queryArgs, *input.Quantity)
	}
	if input.MinQuantity != nil {
		querySet += ", min_quantity = ?"
		queryArgs = append(queryArgs, *input.MinQuantity)
	}
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE parts SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	p, err := h.fetchPart(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("part", events.ActionUpdated, id)
	respond(c, http.StatusOK, p)
}

// MovePart is the handler for PUT /parts/:id/move
// A null drawerId unassigns the part. A nonexistent drawer trips the
// FK, the transaction rolls back and the prior assignment is untouched.
func (h *Handlers) MovePart(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.MovePartInput
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

	var partID int64
	if err := tx.QueryRow("SELECT id FROM parts WHERE id = ? FOR UPDATE", id).Scan(&partID); err != nil {
		if err == sql.ErrNoRows {
			fail(c, apperr.NotFound("part not found"))
			return
		}
		fail(c, err)
		return
	}

	if _, err := tx.Exec("UPDATE parts SET drawer_id = ?, updated_at = ? WHERE id = ?", input.DrawerID, time.Now(), id); err != nil {
		fail(c, err)
		return
	}

	if err := tx.Commit(); err != nil {
		fail(c, err)
		return
	}

	p, err := h.fetchPart(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("part", events.ActionMoved, id)
	respond(c, http.StatusOK, p)
}

// DeletePart is the handler for DELETE /parts/:id
// The part's links go with it via the cascade.
func (h *Handlers) DeletePart(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM parts WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("part not found"))
		return
	}

	h.publish("part", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}

// --- Part Links ---

// CreatePartLink is the handler for POST /parts/:id/links
func (h *Handlers) CreatePartLink(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.CreatePartLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	switch input.LinkType {
	case models.LinkTypePart:
		if input.TargetPartID == nil {
			fail(c, apperr.BadRequest("targetPartId is required for link type 'part'"))
			return
		}
	case models.LinkTypeURL:
		if input.URL == nil || *input.URL == "" {
			fail(c, apperr.BadRequest("url is required for link type 'url'"))
			return
		}
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO part_links (part_id, link_type, target_part_id, url, title, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, input.LinkType, input.TargetPartID, input.URL, input.Title, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	linkID, _ := res.LastInsertId()

	link := models.PartLink{
		ID: linkID, PartID: id, LinkType: input.LinkType,
		TargetPartID: input.TargetPartID, URL: input.URL, Title: input.Title,
		CreatedAt: now,
	}

	h.publish("part", events.ActionUpdated, id)
	respond(c, http.StatusCreated, link)
}

// UpdatePartLink is the handler for PUT /links/:id
func (h *Handlers) UpdatePartLink(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdatePartLinkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	var partID int64
	if err := h.DB.QueryRow("SELECT part_id FROM part_links WHERE id = ?", id).Scan(&partID); err != nil {
		if err == sql.ErrNoRows {
			fail(c, apperr.NotFound("link not found"))
			return
		}
		fail(c, err)
		return
	}

	querySet := ""
	queryArgs := []interface{}{}

	if input.TargetPartID != nil {
		querySet += "target_part_id = ?, "
		queryArgs = append(queryArgs, *input.TargetPartID)
	}
	if input.URL != nil {
		querySet += "url = ?, "
		queryArgs = append(queryArgs, *input.URL)
	}
	if input.Title != nil {
		querySet += "title = ?, "
		queryArgs = append(queryArgs, *input.Title)
	}
	if querySet == "" {
		fail(c, apperr.BadRequest("no fields to update"))
		return
	}
	querySet = querySet[:len(querySet)-2]
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE part_links SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	var l models.PartLink
	err = h.DB.QueryRow(
		"SELECT id, part_id, link_type, target_part_id, url, title, created_at FROM part_links WHERE id = ?", id,
	).Scan(&l.ID, &l.PartID, &l.LinkType, &l.TargetPartID, &l.URL, &l.Title, &l.CreatedAt)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("part", events.ActionUpdated, partID)
	respond(c, http.StatusOK, l)
}

// DeletePartLink is the handler for DELETE /links/:id
func (h *Handlers) DeletePartLink(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var partID int64
	if err := h.DB.QueryRow("SELECT part_id FROM part_links WHERE id = ?", id).Scan(&partID); err != nil {
		if err == sql.ErrNoRows {
			fail(c, apperr.NotFound("link not found"))
			return
		}
		fail(c, err)
		return
	}

	if _, err := h.DB.Exec("DELETE FROM part_links WHERE id = ?", id); err != nil {
		fail(c, err)
		return
	}

	h.publish("part", events.ActionUpdated, partID)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}
