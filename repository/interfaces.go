package repository

import (
	"context"

	"jmtec-reports/models"
)

// ReportRepositoryInterface defines the contract for local report storage
type ReportRepositoryInterface interface {
	SaveLocal(ctx context.Context, report *models.ServiceReport)
	LoadLocal(ctx context.Context, reportNumber string) (*models.ServiceReport, error)
	ListLocal(ctx context.Context) ([]*models.ServiceReport, error)
	DeleteLocal(ctx context.Context, reportNumber string) error
	RecordIssuedSequence(ctx context.Context, sequence int)
	LastIssuedSequence(ctx context.Context) int
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetReportRepository() ReportRepositoryInterface
}
