package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/service"
)

type SequenceHandler struct {
	service service.SequenceService
	log     *logger.Logger
}

func NewSequenceHandler(service service.SequenceService, log *logger.Logger) *SequenceHandler {
	return &SequenceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Allocate the next number of a counter
// @Description Atomically increments the named counter and returns the new value with its formatted code
// @Tags Sequences
// @Produce json
// @Param name path string true "Counter name"
// @Success 200 {object} dto.SequenceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 503 {object} ierr.ErrorResponse
// @Router /sequences/{name}/next [post]
func (h *SequenceHandler) Next(c *gin.Context) {
	resp, err := h.service.Next(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the current value of a counter
// @Tags Sequences
// @Produce json
// @Param name path string true "Counter name"
// @Success 200 {object} dto.SequenceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /sequences/{name} [get]
func (h *SequenceHandler) Peek(c *gin.Context) {
	resp, err := h.service.Peek(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
