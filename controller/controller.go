package controller

import (
	"context"
	"net/http"

	"jmtec-reports/dal"
	"jmtec-reports/models"
	"jmtec-reports/remote"
	"jmtec-reports/repository"
	"jmtec-reports/services"

	"jmtec-reports/utils/logger"
	"jmtec-reports/utils/swagger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Report         *ReportController
	Selection      *SelectionController
	Infrastructure *InfrastructureController

	logger logger.Logger
}

func NewController(ctx context.Context, cfg *models.Config, log logger.Logger) *Controller {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}

	var selectionStore dal.SelectionStoreInterface
	if cfg.RedisEnabled {
		selectionStore, err = dal.NewRedisSelectionStore(cfg, log)
		if err != nil {
			log.Fatalf("Failed to initialize redis selection store: %v", err)
		}
	} else {
		log.Info("Redis disabled, using in-process selection store")
		selectionStore = dal.NewMemorySelectionStore()
	}

	repos := repository.NewRepository(dbclient, cfg, log)
	client := remote.NewReportClient(cfg, log)
	container := services.NewService(repos, client, selectionStore, log, cfg)

	return &Controller{
		Report:         NewReportController(ctx, container.GetReportService(), log),
		Selection:      NewSelectionController(ctx, container.GetSelectionService(), log),
		Infrastructure: NewInfrastructureController(ctx, container.GetInfrastructureService(), log),
		logger:         log,
	}
}

func (c *Controller) RegisterRoutes(ctx context.Context, config *models.Config, r *gin.Engine, basePath string) error {
	v1 := r.Group(basePath)

	// Health check endpoint
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"version": config.AppVersion,
			"service": config.AppName,
		})
	})

	// Swagger UI
	swaggerConfig := swagger.SwaggerConfig{
		Title:         config.AppName + " API",
		SwaggerDocURL: "/swagger/doc.json",
	}
	r.GET("/swagger", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/index.html", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.File("./docs/swagger.json")
	})

	// Report routes. Static segments must be registered alongside the
	// :number wildcard, gin resolves them first.
	reports := v1.Group("/reports")
	reports.GET("", c.Report.GetReports)
	reports.POST("", c.Report.CreateReport)
	reports.GET("/search", c.Report.SearchReports)
	reports.GET("/lookup", c.Report.LookupReport)
	reports.GET("/next-number", c.Report.NextReportNumber)
	reports.GET("/current-number", c.Report.CurrentReportNumber)
	reports.GET("/:number", c.Report.GetReport)
	reports.PUT("/:number", c.Report.UpdateReport)
	reports.DELETE("/:number", c.Report.DeleteReport)
	reports.GET("/:number/print", c.Report.PrintReport)

	// Selection handoff routes
	selection := v1.Group("/selection")
	selection.POST("", c.Selection.StoreSelection)
	selection.GET("/:token", c.Selection.ClaimSelection)

	// Infrastructure routes
	infrastructure := v1.Group("/infrastructure")
	infrastructure.GET("/status", c.Infrastructure.GetWorkerStatus)

	// Create HTTP server
	srv := &http.Server{
		Addr:    config.AppHost + ":" + config.AppPort,
		Handler: r,
	}
	// Start server
	c.logger.Infof("🚀 Starting server on %s:%s", config.AppHost, config.AppPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
