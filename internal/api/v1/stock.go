package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/service"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type StockHandler struct {
	service service.InventoryService
	log     *logger.Logger
}

func NewStockHandler(service service.InventoryService, log *logger.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		log:     log,
	}
}

// @Summary Adjust stock
// @Description Applies a signed quantity and weight movement to a product in a store
// @Tags Stock
// @Accept json
// @Produce json
// @Param adjustment body dto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} dto.StockEntryResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /stock/adjust [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) GetStock(c *gin.Context) {
	resp, err := h.service.GetStock(c.Request.Context(), c.Param("product_id"), c.Param("store_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListStock(c *gin.Context) {
	var filter types.StockFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListStock(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
