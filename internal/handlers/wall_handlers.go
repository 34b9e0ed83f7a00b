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

const wallColumns = "id, name, description, created_at, updated_at"

func (h *Handlers) fetchWall(id int64) (*models.Wall, error) {
	var w models.Wall
	err := h.DB.QueryRow("SELECT "+wallColumns+" FROM walls WHERE id = ?", id).Scan(
		&w.ID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("wall not found")
		}
		return nil, err
	}
	return &w, nil
}

// GetWalls is the handler for GET /walls
func (h *Handlers) GetWalls(c *gin.Context) {
	rows, err := h.DB.Query("SELECT " + wallColumns + " FROM walls ORDER BY name ASC")
	if err != nil {
		fail(c, err)
		return
	}
	defer rows.Close()

	walls := []models.Wall{}
	for rows.Next() {
		var w models.Wall
		if err := rows.Scan(&w.ID, &w.Name, &w.Description, &w.CreatedAt, &w.UpdatedAt); err != nil {
			fail(c, err)
			return
		}
		walls = append(walls, w)
	}

	respond(c, http.StatusOK, walls)
}

// GetWall is the handler for GET /walls/:id
func (h *Handlers) GetWall(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	wall, err := h.fetchWall(id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, wall)
}

// CreateWall is the handler for POST /walls
func (h *Handlers) CreateWall(c *gin.Context) {
	var input models.CreateWallInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO walls (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)",
		input.Name, input.Description, now, now,
	)
	if err != nil {
		fail(c, err)
		return
	}
	id, _ := res.LastInsertId()

	wall := models.Wall{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	h.publish("wall", events.ActionCreated, id)
	respond(c, http.StatusCreated, wall)
}

// UpdateWall is the handler for PUT /walls/:id
func (h *Handlers) UpdateWall(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var input models.UpdateWallInput
	if err := c.ShouldBindJSON(&input); err != nil {
		failBinding(c, err)
		return
	}

	if _, err := h.fetchWall(id); err != nil {
		fail(c, err)
		return
	}

	// Dynamically build the UPDATE so omitted fields stay untouched.
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
	queryArgs = append(queryArgs, id)

	if _, err := h.DB.Exec("UPDATE walls SET "+querySet+" WHERE id = ?", queryArgs...); err != nil {
		fail(c, err)
		return
	}

	wall, err := h.fetchWall(id)
	if err != nil {
		fail(c, err)
		return
	}

	h.publish("wall", events.ActionUpdated, id)
	respond(c, http.StatusOK, wall)
}

// DeleteWall is the handler for DELETE /walls/:id
// A wall that still holds cases is protected by the FK and comes back
// as INVALID_REFERENCE.
func (h *Handlers) DeleteWall(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	res, err := h.DB.Exec("DELETE FROM walls WHERE id = ?", id)
	if err != nil {
		fail(c, err)
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		fail(c, apperr.NotFound("wall not found"))
		return
	}

	h.publish("wall", events.ActionDeleted, id)
	respond(c, http.StatusOK, gin.H{"deleted": id})
}
