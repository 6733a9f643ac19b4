package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"cafemanagement/internal/cache"
)

// StreamsHandler exposes the reactive collection feeds over SSE. Each
// connection first receives the current snapshot, then one event per refresh;
// a slow client only ever sees the latest state.
type StreamsHandler struct{ caches *cache.Collections }

func NewStreamsHandler(caches *cache.Collections) *StreamsHandler {
	return &StreamsHandler{caches: caches}
}

func (h *StreamsHandler) Orders(c *gin.Context)   { streamFeed(c, h.caches.Orders) }
func (h *StreamsHandler) Products(c *gin.Context) { streamFeed(c, h.caches.Products) }
func (h *StreamsHandler) Users(c *gin.Context)    { streamFeed(c, h.caches.Users) }

func streamFeed[T any](c *gin.Context, feed *cache.Feed[T]) {
	ch, cancel := feed.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
