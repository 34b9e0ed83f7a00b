package handlers

import (
	"database/sql"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/partwall/partwall-golang/internal/apperr"
	"github.com/partwall/partwall-golang/internal/events"
)

// Handlers holds all dependencies for the API handlers.
type Handlers struct {
	DB     *sql.DB
	Hub    *events.Hub
	Logger zerolog.Logger
}

// respond writes the success envelope.
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail hands the error to the translation middleware and stops the chain.
func fail(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

// failBinding wraps a gin binding error so the client sees the
// validator's message with an INVALID_INPUT code.
func failBinding(c *gin.Context, err error) {
	fail(c, apperr.BadRequest(err.Error()))
}

// idParam parses the named numeric path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid " + name + " parameter")
	}
	return id, nil
}

// publish emits a change event for the live-update stream.
func (h *Handlers) publish(entity, action string, id int64) {
	if h.Hub != nil {
		h.Hub.Publish(events.Event{Entity: entity, Action: action, ID: id})
	}
}
