package v1

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/stream"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type StreamHandler struct {
	bus *stream.Bus
	log *logger.Logger
}

func NewStreamHandler(bus *stream.Bus, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		bus: bus,
		log: log,
	}
}

// @Summary Subscribe to changes
// @Description Server sent events for one resource topic. The first event is "connected"; "change" events follow as mutations commit, with "keepalive" in between.
// @Tags Stream
// @Produce text/event-stream
// @Param topic path string true "Topic" Enums(customers, suppliers, products, invoices, payments, stock)
// @Failure 400 {object} ierr.ErrorResponse
// @Router /stream/{topic} [get]
func (h *StreamHandler) Subscribe(c *gin.Context) {
	topic := c.Param("topic")
	if !lo.Contains(types.Topics, topic) {
		c.Error(ierr.NewError("unknown topic").
			WithHintf("Topic must be one of %v", types.Topics).
			WithReportableDetails(map[string]any{"topic": topic}).
			Mark(ierr.ErrValidation))
		return
	}

	sub, err := h.bus.Subscribe(c.Request.Context(), topic)
	if err != nil {
		c.Error(err)
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-sub.Events()
		if !ok {
			return false
		}
		c.SSEvent(string(ev.Type), ev)
		return true
	})

	h.log.Debugw("stream closed",
		"subscription_id", sub.ID,
		"topic", topic,
	)
}
