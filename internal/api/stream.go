package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// pushLatest keeps only the newest snapshot in ch. Deliveries from one
// subscription arrive serially, so draining then sending never blocks.
func pushLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// streamSSE writes each value received on ch as one server-sent event until
// the client disconnects or ch is closed.
func streamSSE[T any](c *gin.Context, event string, ch <-chan T) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case v, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(event, v)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
