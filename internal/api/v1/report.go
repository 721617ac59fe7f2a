package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/service"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

// @Summary Monthly sales
// @Description Net invoice totals per calendar month for the trailing months
// @Tags Reports
// @Produce json
// @Param request query dto.MonthlySalesRequest false "Window"
// @Success 200 {object} dto.MonthlySalesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/monthly-sales [get]
func (h *ReportHandler) MonthlySales(c *gin.Context) {
	var req dto.MonthlySalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid report parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.MonthlySales(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Invoice ledger
// @Tags Reports
// @Produce json
// @Param request query dto.LedgerListingRequest false "Filter"
// @Success 200 {object} dto.LedgerListingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/ledger [get]
func (h *ReportHandler) Ledger(c *gin.Context) {
	var req dto.LedgerListingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid report parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.LedgerListing(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Low movement products
// @Description Products ranked by units sold, slowest first
// @Tags Reports
// @Produce json
// @Param request query dto.LowMovementRequest false "Window"
// @Success 200 {object} dto.LowMovementResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /reports/low-movement [get]
func (h *ReportHandler) LowMovement(c *gin.Context) {
	var req dto.LowMovementRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid report parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.LowMovement(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
