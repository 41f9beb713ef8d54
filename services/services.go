package services

import (
	"jmtec-reports/dal"
	"jmtec-reports/models"
	"jmtec-reports/remote"
	"jmtec-reports/repository"
	"jmtec-reports/utils/logger"
)

// Service implements ServiceContainerInterface
type Service struct {
	reportService         ReportServiceInterface
	selectionService      SelectionServiceInterface
	infrastructureService InfrastructureServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	client remote.ReportClientInterface,
	selectionStore dal.SelectionStoreInterface,
	logger logger.Logger,
	config *models.Config,
) ServiceContainerInterface {
	return &Service{
		reportService:         NewReportService(repoContainer.GetReportRepository(), client, logger),
		selectionService:      NewSelectionService(selectionStore, config, logger),
		infrastructureService: NewInfrastructureService(logger, config),
	}
}

// GetReportService returns the report service interface
func (s *Service) GetReportService() ReportServiceInterface {
	return s.reportService
}

// GetSelectionService returns the selection service interface
func (s *Service) GetSelectionService() SelectionServiceInterface {
	return s.selectionService
}

// GetInfrastructureService returns the infrastructure service interface
func (s *Service) GetInfrastructureService() InfrastructureServiceInterface {
	return s.infrastructureService
}
