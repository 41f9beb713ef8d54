package services

import (
	"context"

	"jmtec-reports/models"
)

// ReportServiceInterface defines the contract for the report service
type ReportServiceInterface interface {
	ListReports(ctx context.Context) (*models.ReportListEnvelope, error)
	SearchReports(ctx context.Context, filter *models.ReportFilter) (*models.ReportListEnvelope, error)
	GetReport(ctx context.Context, reportNumber string) (*models.ServiceReport, error)
	LookupReport(ctx context.Context, key string) (*models.ServiceReport, error)
	CreateReport(ctx context.Context, req *models.CreateReportRequest) (*models.ReportEnvelope, error)
	UpdateReport(ctx context.Context, reportNumber string, req *models.UpdateReportRequest) (*models.ReportEnvelope, error)
	DeleteReport(ctx context.Context, reportNumber string) (*models.SyncStatus, error)
	NextReportNumber(ctx context.Context) (string, bool)
	CurrentSequence(ctx context.Context) (int, bool)
}

// SelectionServiceInterface defines the contract for the selection handoff
type SelectionServiceInterface interface {
	StoreSelection(ctx context.Context, reportNumber string) (string, error)
	ClaimSelection(ctx context.Context, token string) (string, error)
}

// InfrastructureServiceInterface defines the contract for infrastructure inspection
type InfrastructureServiceInterface interface {
	GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error)
	IsWorkerHealthy() (bool, string, error)
}

// ServiceContainerInterface defines the contract for the service container
type ServiceContainerInterface interface {
	GetReportService() ReportServiceInterface
	GetSelectionService() SelectionServiceInterface
	GetInfrastructureService() InfrastructureServiceInterface
}
