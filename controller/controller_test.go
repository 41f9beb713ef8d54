package controller

import (
	"context"
	"testing"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewControllerWiring(t *testing.T) {
	cfg := &models.Config{
		AppName:             "jmtec-reports",
		AppEnv:              "test",
		AWSRegion:           "us-east-1",
		DynamoDBEndpoint:    "http://localhost:8000",
		DynamoDBTablePrefix: "test",
		RemoteBaseURL:       "http://localhost:5000",
		RemoteTimeout:       time.Second,
		RedisEnabled:        false,
		LogLevel:            "error",
		LogFormat:           "text",
	}
	log := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)

	c := NewController(context.Background(), cfg, log)

	require.NotNil(t, c.Report)
	require.NotNil(t, c.Selection)
	require.NotNil(t, c.Infrastructure)

	// Everything logs through the one injected logger
	assert.Equal(t, log, c.logger)
	assert.Equal(t, log, c.Report.logger)
	assert.Equal(t, log, c.Selection.logger)
	assert.Equal(t, log, c.Infrastructure.logger)
}
