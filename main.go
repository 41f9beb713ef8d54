package main

import (
	"context"
	"fmt"
	"log"

	"jmtec-reports/controller"
	"jmtec-reports/dal"
	"jmtec-reports/middelware"
	"jmtec-reports/models"
	"jmtec-reports/utils"
	"jmtec-reports/utils/logger"
	"jmtec-reports/worker"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title JMTEC Reports API
// @version 1.0
// @description Service report management for fuel-station equipment maintenance.
// @description
// @description Reports are stored locally first and pushed to the central
// @description reports API best-effort, so field work never blocks on
// @description connectivity. Listings merge both stores, with the central
// @description API winning on conflicts.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1
func main() {
	Init()
	fmt.Println("Config Loaded ::", utils.PrintPrettyJSON(config))

	ctx := context.Background()
	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)

	r := gin.New()
	logging := middelware.NewLoggingMiddleware(appLogger)
	r.Use(logging.Recovery())
	r.Use(logging.StructuredLogger())
	r.Use(middelware.NewCORSMiddleware(config).CORS())

	c := controller.NewController(ctx, config, appLogger)

	// Start server (this is blocking)
	go c.RegisterRoutes(ctx, config, r, config.BasePath)

	// Start infrastructure worker (cron job)
	dbClient, err := dal.NewDynamoDBClient(config, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB client: %v", err)
	}
	infraWorker, err := worker.NewWorker(ctx, config, dbClient, appLogger)
	if err != nil {
		log.Fatalf("Failed to create infrastructure worker: %v", err)
	}
	if err := infraWorker.Start(); err != nil {
		log.Fatalf("Failed to start infrastructure worker: %v", err)
	}

	// Keep main goroutine alive
	select {}
}
