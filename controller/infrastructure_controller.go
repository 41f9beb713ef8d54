package controller

import (
	"context"
	"net/http"

	"jmtec-reports/models"
	"jmtec-reports/services"
	"jmtec-reports/utils/logger"

	"github.com/gin-gonic/gin"
)

type InfrastructureController struct {
	ctx                   context.Context
	infrastructureService services.InfrastructureServiceInterface
	logger                logger.Logger
}

func NewInfrastructureController(ctx context.Context, infrastructureService services.InfrastructureServiceInterface, logger logger.Logger) *InfrastructureController {
	return &InfrastructureController{
		ctx:                   ctx,
		infrastructureService: infrastructureService,
		logger:                logger,
	}
}

// GetWorkerStatus handles GET /api/v1/infrastructure/status
// @Summary Get infrastructure worker status
// @Description Report the outcome of the last table-setup worker run
// @Tags Infrastructure
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Status retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error - No status available"
// @Router /infrastructure/status [get]
func (h *InfrastructureController) GetWorkerStatus(c *gin.Context) {
	result, err := h.infrastructureService.GetWorkerStatus(h.ctx)
	if err != nil {
		h.logger.Error("Failed to get worker status", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to get worker status",
			Error: &models.APIError{
				Type:    "InfrastructureError",
				Details: err.Error(),
			},
		})
		return
	}

	healthy, reason, _ := h.infrastructureService.IsWorkerHealthy()

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Status retrieved successfully",
		Data: map[string]interface{}{
			"execution": result,
			"healthy":   healthy,
			"reason":    reason,
		},
	})
}
