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

const sizeColumns = "id, name, width_mm, height_mm, depth_mm, created_at, updated_at"

func (h *Handlers) fetchSize(id int64) (*models.DrawerSize, error) {
	var s models.DrawerSize
	err := h.DB.QueryRow("SELECT "+sizeColumns+" FROM drawer_sizes WHERE id = ?", id).Scan(
		&s.ID, &s.Name, &s.WidthMM, &s.HeightMM, &s.DepthMM, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("drawer size not found")
		}
		return nil, err
	}
	return &s, nil
}

// GetDrawerSizes is the handler for GET /drawer-sizes
func (h *Handlers) GetDrawerSizes(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + sizeColumns + " FROM drawer_sizes ORDER BY name ASC")
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	sizes := []models.DrawerSize{}
	for rows.Next() {
		var s models.DrawerSize
		if err := rows.Scan(&s.ID, &s.Name, &s.WidthMM, &s.HeightMM, &s.DepthMM, &s.CreatedAt, &s.UpdatedAt); err != nil {
			fail(c, err)
			return
		}
		sizes = append(sizes, s)
	}

	respond(c, http.StatusOK, sizes)
}

// GetDrawerSize is the handler for GET /drawer-sizes/:id
func (h *Handlers) GetDrawerSize(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	s, err := h.fetchSize(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, s)
}

// CreateDrawerSize is the handler for POST /drawer-sizes
func (h *Handlers) CreateDrawerSize(c *gin.Context) {
	var input models.CreateDrawerSizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO drawer_sizes (name, width_mm, height_mm, depth_mm, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		input.Name, input.WidthMM, input.HeightMM, input.DepthMM, now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	s := models.DrawerSize{
		ID: id, Name: input.Name,
		WidthMM: input.WidthMM, HeightMM: input.HeightMM, DepthMM: input.DepthMM,
		CreatedAt: now, UpdatedAt: now,
	}

	h.publish("drawer-size", events.ActionCreated, id)
	respond(c, http.StatusCreated, s)
}

// UpdateDrawerSize is the handler for PUT /drawer-sizes/:id
func (h *Handlers) UpdateDrawerSize(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateDrawerSizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchSize(id); err != nil {
		fail(c, err)
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Name != nil {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *input.Name)
	}
	if input.WidthMM != nil {
		querySet += ", width_mm = ?"
		queryArgs = append(queryArgs, *input.WidthMM)
	}
	if input.HeightMM != nil {
		querySet += ", height_mm = ?"
		queryArgs = append(queryArgs, *input.HeightMM)
	}
	if input.DepthMM != nil {
		querySet += ", depth_mm = ?"
		queryArgs = append(queryArgs, *input.DepthMM)
	}
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE drawer_sizes SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	s, err := h.fetchSize(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("drawer-size", events.ActionUpdated, id)
	respond(c, http.StatusOK, s)
}

// DeleteDrawerSize is the handler for DELETE /drawer-sizes/:id
// A size still referenced by drawers is FK-protected and maps to
// INVALID_REFERENCE.
func (h *Handlers) DeleteDrawerSize(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM drawer_sizes WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("drawer size not found"))
		return
	}

	h.publish("drawer-size", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}
