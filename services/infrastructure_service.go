package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/utils/logger"
)

// InfrastructureService exposes the worker's status file so operators
// can see whether table setup ran and succeeded.
type InfrastructureService struct {
	logger logger.Logger
	config *models.Config
}

func NewInfrastructureService(logger logger.Logger, config *models.Config) *InfrastructureService {
	return &InfrastructureService{
		logger: logger,
		config: config,
	}
}

// getWorkerStatus reads worker status from the status file
func (s *InfrastructureService) getWorkerStatus() (*models.ExecutionResult, error) {
	statusFilePath := fmt.Sprintf("/tmp/jmtec-reports-status-%s.json", s.config.AppEnv)

	data, err := os.ReadFile(statusFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read worker status file: %w", err)
	}

	var result models.ExecutionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal worker status: %w", err)
	}

	return &result, nil
}

// GetWorkerStatus returns the current worker status (public method for API)
func (s *InfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	s.logger.Debug("Getting worker status")
	return s.getWorkerStatus()
}

// IsWorkerHealthy reports whether the last worker run finished
// successfully and recently enough to trust.
func (s *InfrastructureService) IsWorkerHealthy() (bool, string, error) {
	result, err := s.getWorkerStatus()
	if err != nil {
		return false, "no worker status available", err
	}

	if result.Status == models.StatusFailed {
		return false, fmt.Sprintf("last run failed: %s", result.Error), nil
	}
	if result.Status == models.StatusRunning {
		return true, "worker run in progress", nil
	}
	if !result.Success {
		return false, "last run did not complete successfully", nil
	}
	if time.Since(result.StartTime) > 48*time.Hour {
		return false, "last successful run is older than 48h", nil
	}
	return true, "healthy", nil
}
