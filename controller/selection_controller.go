package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"jmtec-reports/models"
	"jmtec-reports/services"
	"jmtec-reports/utils/logger"

	"github.com/gin-gonic/gin"
)

type SelectionController struct {
	ctx              context.Context
	selectionService services.SelectionServiceInterface
	logger           logger.Logger
}

func NewSelectionController(ctx context.Context, selectionService services.SelectionServiceInterface, logger logger.Logger) *SelectionController {
	return &SelectionController{
		ctx:              ctx,
		selectionService: selectionService,
		logger:           logger,
	}
}

type storeSelectionRequest struct {
	ReportNumber string `json:"reportNumber"`
}

// StoreSelection handles POST /api/v1/selection
// @Summary Store a report selection
// @Description Record the report a user picked and return a one-shot claim token
// @Tags Selection Handoff
// @Accept json
// @Produce json
// @Param request body storeSelectionRequest true "Selection request"
// @Success 201 {object} models.APIResponse "Selection stored successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Missing report number"
// @Router /selection [post]
func (h *SelectionController) StoreSelection(c *gin.Context) {
	var req storeSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: err.Error(),
			},
		})
		return
	}

	if strings.TrimSpace(req.ReportNumber) == "" {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: "reportNumber is required",
				Field:   "reportNumber",
			},
		})
		return
	}

	token, err := h.selectionService.StoreSelection(h.ctx, req.ReportNumber)
	if err != nil {
		h.logger.Error("Failed to store selection", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to store selection",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: "Selection stored successfully",
		Data: map[string]interface{}{
			"token": token,
		},
	})
}

// ClaimSelection handles GET /api/v1/selection/:token
// @Summary Claim a stored selection
// @Description Consume a claim token; each token works exactly once
// @Tags Selection Handoff
// @Accept json
// @Produce json
// @Param token path string true "Claim token"
// @Success 200 {object} models.APIResponse "Selection claimed successfully"
// @Failure 404 {object} models.APIResponse "Not Found - Unknown, expired or consumed token"
// @Router /selection/{token} [get]
func (h *SelectionController) ClaimSelection(c *gin.Context) {
	token := c.Param("token")

	reportNumber, err := h.selectionService.ClaimSelection(h.ctx, token)
	if err != nil {
		if errors.Is(err, services.ErrSelectionNotFound) {
			c.JSON(http.StatusNotFound, models.APIResponse{
				Status:  "error",
				Code:    http.StatusNotFound,
				Message: "Selection not found",
				Error: &models.APIError{
					Type:    "NotFoundError",
					Details: "token is unknown, expired or already claimed",
				},
			})
			return
		}
		h.logger.Error("Failed to claim selection", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to claim selection",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Selection claimed successfully",
		Data: map[string]interface{}{
			"reportNumber": reportNumber,
		},
	})
}
