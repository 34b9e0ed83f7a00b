package handlers

import (
	"io"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// keepaliveInterval is how often an idle stream sends a comment-style
// ping so proxies do not reap the connection.
const keepaliveInterval = 25 * time.Second

// StreamEvents is the handler for GET /events
// It holds the connection open and forwards hub events as SSE messages.
// Clients reconnect on disconnect; there is no replay.
func (h *Handlers) StreamEvents(c *gin.Context) {
	id, ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(id)

	// No caching anywhere on the path, and no proxy buffering
	// (X-Accel-Buffering covers nginx-style intermediaries).
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	h.Logger.Debug().Str("subscriber", id).Msg("event stream attached")

	ctx := c.Request.Context()
	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			sse.Encode(w, sse.Event{Event: "change", Data: ev})
			return true
		case <-keepalive.C:
			sse.Encode(w, sse.Event{Event: "ping", Data: "keepalive"})
			return true
		}
	})

	h.Logger.Debug().Str("subscriber", id).Msg("event stream detached")
}
