package repository

import (
	"jmtec-reports/dal"
	"jmtec-reports/models"
	"jmtec-reports/utils/logger"
)

type Repository struct {
	Report *ReportRepository
}

func NewRepository(db dal.RecordStoreInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Report: NewReportRepository(db, cfg, log),
	}
}

func (r *Repository) GetReportRepository() ReportRepositoryInterface {
	return r.Report
}
