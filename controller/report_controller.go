package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jmtec-reports/models"
	"jmtec-reports/services"
	"jmtec-reports/utils"
	"jmtec-reports/utils/logger"
	"jmtec-reports/utils/printform"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReportController struct {
	ctx           context.Context
	reportService services.ReportServiceInterface
	logger        logger.Logger
	validator     *validator.Validate
}

func NewReportController(ctx context.Context, reportService services.ReportServiceInterface, logger logger.Logger) *ReportController {
	v := validator.New()
	if err := utils.RegisterValidators(v); err != nil {
		logger.Fatalf("Failed to register validators: %v", err)
	}
	return &ReportController{
		ctx:           ctx,
		reportService: reportService,
		logger:        logger,
		validator:     v,
	}
}

func (h *ReportController) formatValidationErrors(err error) string {
	var errorMessages []string

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			switch fieldError.Tag() {
			case "required":
				errorMessages = append(errorMessages, fieldError.Field()+" is required")
			case "min":
				errorMessages = append(errorMessages, fieldError.Field()+" must be at least "+fieldError.Param()+" characters/items")
			case "max":
				errorMessages = append(errorMessages, fieldError.Field()+" must be at most "+fieldError.Param()+" characters/items")
			case "oneof":
				errorMessages = append(errorMessages, fieldError.Field()+" must be one of: "+strings.ReplaceAll(fieldError.Param(), " ", ", "))
			case "datetime":
				errorMessages = append(errorMessages, fieldError.Field()+" must match format "+fieldError.Param())
			case "cnpj":
				errorMessages = append(errorMessages, fieldError.Field()+" is not a valid CNPJ")
			case "stateregistration":
				errorMessages = append(errorMessages, fieldError.Field()+" is not a valid state registration")
			default:
				errorMessages = append(errorMessages, fieldError.Field()+" is invalid")
			}
		}
	}

	return strings.Join(errorMessages, "; ")
}

// CreateReport handles POST /api/v1/reports
// @Summary Create a new service report
// @Description Create a service report, store it locally and push it to the central API
// @Tags Report Management
// @Accept json
// @Produce json
// @Param request body models.CreateReportRequest true "Create report request"
// @Success 201 {object} models.APIResponse "Report created successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid report data"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Report creation failed"
// @Router /reports [post]
func (h *ReportController) CreateReport(c *gin.Context) {
	var req models.CreateReportRequest
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

	if err := h.validator.Struct(&req); err != nil {
		h.logger.Error("Validation failed:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: h.formatValidationErrors(err),
			},
		})
		return
	}

	envelope, err := h.reportService.CreateReport(h.ctx, &req)
	if err != nil {
		h.logger.Error("Failed to create report", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to create report",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	message := "Report created successfully"
	if !envelope.Sync.Synced {
		message = "Report created locally; remote sync pending"
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		Data:    envelope,
	})
}

// GetReports handles GET /api/v1/reports
// @Summary List service reports
// @Description Retrieve the merged local and remote report list with pagination
// @Tags Report Management
// @Accept json
// @Produce json
// @Param page query int false "Page number for pagination"
// @Param limit query int false "Number of reports per page"
// @Success 200 {object} models.APIResponse "Reports retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Failed to retrieve reports"
// @Router /reports [get]
func (h *ReportController) GetReports(c *gin.Context) {
	page := 1
	limit := 10

	if pageParam := c.Query("page"); pageParam != "" {
		if p, err := strconv.Atoi(pageParam); err == nil && p > 0 {
			page = p
		}
	}

	if limitParam := c.Query("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	envelope, err := h.reportService.ListReports(h.ctx)
	if err != nil {
		h.logger.Error("Failed to get reports", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to get reports",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	reports := envelope.Reports
	total := len(reports)
	totalPages := (total + limit - 1) / limit
	offset := (page - 1) * limit

	var paginatedReports []*models.ServiceReport
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		paginatedReports = reports[offset:end]
	} else {
		paginatedReports = []*models.ServiceReport{}
	}

	responseData := map[string]interface{}{
		"reports":          paginatedReports,
		"remote_available": envelope.RemoteAvailable,
		"pagination": map[string]interface{}{
			"page":         page,
			"limit":        limit,
			"total":        total,
			"total_pages":  totalPages,
			"has_next":     page < totalPages,
			"has_previous": page > 1,
		},
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Reports retrieved successfully",
		Data:    responseData,
	})
}

// SearchReports handles GET /api/v1/reports/search
// @Summary Search service reports
// @Description Filter reports by number, company name, CNPJ, period and service types
// @Tags Report Management
// @Accept json
// @Produce json
// @Param number query string false "Report number substring"
// @Param companyName query string false "Company name substring"
// @Param taxId query string false "CNPJ digits"
// @Param period query string false "Relative period (today, thisWeek, thisMonth, custom)"
// @Param dateFrom query string false "Custom period start (YYYY-MM-DD)"
// @Param dateTo query string false "Custom period end (YYYY-MM-DD)"
// @Param serviceTypes query string false "Comma-separated service types"
// @Success 200 {object} models.APIResponse "Reports retrieved successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid filter"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Search failed"
// @Router /reports/search [get]
func (h *ReportController) SearchReports(c *gin.Context) {
	filter := &models.ReportFilter{
		NumberSubstring:      c.Query("number"),
		CompanyNameSubstring: c.Query("companyName"),
		TaxIDDigits:          c.Query("taxId"),
		DateFrom:             c.Query("dateFrom"),
		DateTo:               c.Query("dateTo"),
	}

	if period := c.Query("period"); period != "" {
		switch models.FilterPeriod(period) {
		case models.PeriodToday, models.PeriodThisWeek, models.PeriodThisMonth, models.PeriodCustom:
			filter.Period = models.FilterPeriod(period)
		default:
			c.JSON(http.StatusBadRequest, models.APIResponse{
				Status:  "error",
				Code:    http.StatusBadRequest,
				Message: "Invalid filter",
				Error: &models.APIError{
					Type:    "ValidationError",
					Details: "period must be one of: today, thisWeek, thisMonth, custom",
					Field:   "period",
				},
			})
			return
		}
	}

	if types := c.Query("serviceTypes"); types != "" {
		for _, t := range strings.Split(types, ",") {
			filter.ServiceTypes = append(filter.ServiceTypes, models.ServiceType(strings.TrimSpace(t)))
		}
	}

	envelope, err := h.reportService.SearchReports(h.ctx, filter)
	if err != nil {
		h.logger.Error("Failed to search reports", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to search reports",
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
		Message: "Reports retrieved successfully",
		Data: map[string]interface{}{
			"reports":          envelope.Reports,
			"remote_available": envelope.RemoteAvailable,
		},
	})
}

// GetReport handles GET /api/v1/reports/:number
// @Summary Get a service report
// @Description Retrieve one report by number, local copy first
// @Tags Report Management
// @Accept json
// @Produce json
// @Param number path string true "Report number"
// @Success 200 {object} models.APIResponse "Report retrieved successfully"
// @Failure 404 {object} models.APIResponse "Not Found - Unknown report number"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Lookup failed"
// @Router /reports/{number} [get]
func (h *ReportController) GetReport(c *gin.Context) {
	reportNumber := c.Param("number")

	report, err := h.reportService.GetReport(h.ctx, reportNumber)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, models.APIResponse{
				Status:  "error",
				Code:    http.StatusNotFound,
				Message: "Report not found",
				Error: &models.APIError{
					Type:    "NotFoundError",
					Details: "no report with number " + reportNumber,
				},
			})
			return
		}
		h.logger.Error("Failed to get report", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to get report",
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
		Message: "Report retrieved successfully",
		Data:    report,
	})
}

// LookupReport handles GET /api/v1/reports/lookup
// @Summary Look up a report by number or company name
// @Description Resolve a key that may be a report number or a company name
// @Tags Report Management
// @Accept json
// @Produce json
// @Param key query string true "Report number or company name"
// @Success 200 {object} models.APIResponse "Report retrieved successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Missing key"
// @Failure 404 {object} models.APIResponse "Not Found - Nothing matched"
// @Router /reports/lookup [get]
func (h *ReportController) LookupReport(c *gin.Context) {
	key := strings.TrimSpace(c.Query("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Invalid request",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: "key is required",
				Field:   "key",
			},
		})
		return
	}

	report, err := h.reportService.LookupReport(h.ctx, key)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, models.APIResponse{
				Status:  "error",
				Code:    http.StatusNotFound,
				Message: "Report not found",
				Error: &models.APIError{
					Type:    "NotFoundError",
					Details: "no report matched " + key,
				},
			})
			return
		}
		h.logger.Error("Failed to look up report", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to look up report",
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
		Message: "Report retrieved successfully",
		Data:    report,
	})
}

// UpdateReport handles PUT /api/v1/reports/:number
// @Summary Update a service report
// @Description Apply changes to a report, recompute derived fields and push remotely
// @Tags Report Management
// @Accept json
// @Produce json
// @Param number path string true "Report number"
// @Param request body models.UpdateReportRequest true "Update report request"
// @Success 200 {object} models.APIResponse "Report updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid report data"
// @Failure 404 {object} models.APIResponse "Not Found - Unknown report number"
// @Router /reports/{number} [put]
func (h *ReportController) UpdateReport(c *gin.Context) {
	reportNumber := c.Param("number")

	var req models.UpdateReportRequest
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

	if err := h.validator.Struct(&req); err != nil {
		h.logger.Error("Validation failed:", err)
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Error: &models.APIError{
				Type:    "ValidationError",
				Details: h.formatValidationErrors(err),
			},
		})
		return
	}

	envelope, err := h.reportService.UpdateReport(h.ctx, reportNumber, &req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, models.APIResponse{
				Status:  "error",
				Code:    http.StatusNotFound,
				Message: "Report not found",
				Error: &models.APIError{
					Type:    "NotFoundError",
					Details: "no report with number " + reportNumber,
				},
			})
			return
		}
		h.logger.Error("Failed to update report", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to update report",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	message := "Report updated successfully"
	if !envelope.Sync.Synced {
		message = "Report updated locally; remote sync pending"
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    envelope,
	})
}

// DeleteReport handles DELETE /api/v1/reports/:number
// @Summary Delete a service report
// @Description Remove a report locally and remotely; requires confirm=true
// @Tags Report Management
// @Accept json
// @Produce json
// @Param number path string true "Report number"
// @Param confirm query bool true "Must be true to perform the deletion"
// @Success 200 {object} models.APIResponse "Report deleted successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Deletion not confirmed"
// @Failure 500 {object} models.APIResponse "Internal Server Error - Deletion failed"
// @Router /reports/{number} [delete]
func (h *ReportController) DeleteReport(c *gin.Context) {
	reportNumber := c.Param("number")

	// Destructive operation; the client must confirm explicitly.
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, models.APIResponse{
			Status:  "error",
			Code:    http.StatusBadRequest,
			Message: "Deletion not confirmed",
			Error: &models.APIError{
				Type:    "ConfirmationError",
				Details: "pass confirm=true to delete report " + reportNumber,
				Field:   "confirm",
			},
		})
		return
	}

	sync, err := h.reportService.DeleteReport(h.ctx, reportNumber)
	if err != nil {
		h.logger.Error("Failed to delete report", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to delete report",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	message := "Report deleted successfully"
	if !sync.Synced {
		message = "Report deleted locally; remote sync pending"
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    sync,
	})
}

// NextReportNumber handles GET /api/v1/reports/next-number
// @Summary Get the next free report number
// @Description Ask the central numbering endpoint, falling back to a local default
// @Tags Report Numbering
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Number retrieved successfully"
// @Router /reports/next-number [get]
func (h *ReportController) NextReportNumber(c *gin.Context) {
	number, synced := h.reportService.NextReportNumber(h.ctx)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Number retrieved successfully",
		Data: map[string]interface{}{
			"number": number,
			"synced": synced,
		},
	})
}

// CurrentReportNumber handles GET /api/v1/reports/current-number
// @Summary Get the current numbering sequence
// @Description Report where the numbering sequence stands
// @Tags Report Numbering
// @Accept json
// @Produce json
// @Success 200 {object} models.APIResponse "Sequence retrieved successfully"
// @Router /reports/current-number [get]
func (h *ReportController) CurrentReportNumber(c *gin.Context) {
	current, synced := h.reportService.CurrentSequence(h.ctx)

	c.JSON(http.StatusOK, models.APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: "Sequence retrieved successfully",
		Data: map[string]interface{}{
			"current": current,
			"synced":  synced,
		},
	})
}

// PrintReport handles GET /api/v1/reports/:number/print
// @Summary Render a report as a printable page
// @Description Produce the paper-form HTML for one report
// @Tags Report Management
// @Produce html
// @Param number path string true "Report number"
// @Success 200 {string} string "Printable HTML document"
// @Failure 404 {object} models.APIResponse "Not Found - Unknown report number"
// @Router /reports/{number}/print [get]
func (h *ReportController) PrintReport(c *gin.Context) {
	reportNumber := c.Param("number")

	report, err := h.reportService.GetReport(h.ctx, reportNumber)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, models.APIResponse{
				Status:  "error",
				Code:    http.StatusNotFound,
				Message: "Report not found",
				Error: &models.APIError{
					Type:    "NotFoundError",
					Details: "no report with number " + reportNumber,
				},
			})
			return
		}
		h.logger.Error("Failed to load report for printing", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to load report",
			Error: &models.APIError{
				Type:    "StorageError",
				Details: err.Error(),
			},
		})
		return
	}

	html, err := printform.Render(report)
	if err != nil {
		h.logger.Error("Failed to render print form", err)
		c.JSON(http.StatusInternalServerError, models.APIResponse{
			Status:  "error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to render print form",
			Error: &models.APIError{
				Type:    "RenderError",
				Details: err.Error(),
			},
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
