package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"jmtec-reports/dal"
	"jmtec-reports/models"
	"jmtec-reports/utils/logger"
)

// ErrReportNotFound is the local store's not-found sentinel. Missing
// keys and undecodable payloads both map to it.
var ErrReportNotFound = errors.New("report not found")

const (
	reportsTable    = "reports"
	reportKeyPrefix = "report_"
	sequenceKey     = "report_sequence"
)

// ReportRepository persists reports in the local store, one record per
// report under report_<number>. Local reads must keep working when the
// remote API is down, so everything here is self-contained.
type ReportRepository struct {
	db     dal.RecordStoreInterface
	config *models.Config
	logger logger.Logger
}

func NewReportRepository(db dal.RecordStoreInterface, cfg *models.Config, log logger.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ReportRepository) tableName() string {
	return r.config.DynamoDBTablePrefix + "_" + reportsTable
}

// SaveLocal writes the report under report_<number>. Store failures are
// logged and swallowed: local persistence is best-effort cache behavior
// and must never abort the caller's save flow.
func (r *ReportRepository) SaveLocal(ctx context.Context, report *models.ServiceReport) {
	payload, err := json.Marshal(report)
	if err != nil {
		r.logger.Errorf("Failed to serialize report %s: %v", report.ReportNumber, err)
		return
	}

	key := reportKeyPrefix + report.ReportNumber
	if err := r.db.PutRecord(ctx, r.tableName(), key, string(payload)); err != nil {
		r.logger.Errorf("Failed to store report %s locally: %v", report.ReportNumber, err)
		return
	}

	r.logger.Debugf("Report %s stored locally", report.ReportNumber)
}

// LoadLocal reads one report by number. Undecodable payloads are
// treated the same as absent records.
func (r *ReportRepository) LoadLocal(ctx context.Context, reportNumber string) (*models.ServiceReport, error) {
	payload, err := r.db.GetRecord(ctx, r.tableName(), reportKeyPrefix+reportNumber)
	if err != nil {
		if errors.Is(err, dal.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	var report models.ServiceReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		r.logger.Warnf("Discarding undecodable local report %s: %v", reportNumber, err)
		return nil, ErrReportNotFound
	}
	return &report, nil
}

// ListLocal returns every locally stored report, newest service date
// first. Records that fail to decode are skipped, never fatal.
func (r *ReportRepository) ListLocal(ctx context.Context) ([]*models.ServiceReport, error) {
	records, err := r.db.ScanRecords(ctx, r.tableName(), reportKeyPrefix)
	if err != nil {
		return nil, err
	}

	reports := make([]*models.ServiceReport, 0, len(records))
	for _, record := range records {
		if record.Key == sequenceKey {
			continue
		}
		var report models.ServiceReport
		if err := json.Unmarshal([]byte(record.Payload), &report); err != nil {
			r.logger.Warnf("Skipping undecodable local record %s: %v", record.Key, err)
			continue
		}
		reports = append(reports, &report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].ServiceDate > reports[j].ServiceDate
	})
	return reports, nil
}

// DeleteLocal removes the report record. Deleting an absent report is
// a no-op.
func (r *ReportRepository) DeleteLocal(ctx context.Context, reportNumber string) error {
	if err := r.db.DeleteRecord(ctx, r.tableName(), reportKeyPrefix+reportNumber); err != nil {
		r.logger.Errorf("Failed to delete local report %s: %v", reportNumber, err)
		return err
	}
	return nil
}

// RecordIssuedSequence remembers the numeric sequence of the last
// number handed out, so operators can inspect where numbering stands.
// Best-effort, same as SaveLocal.
func (r *ReportRepository) RecordIssuedSequence(ctx context.Context, sequence int) {
	if err := r.db.PutRecord(ctx, r.tableName(), sequenceKey, strconv.Itoa(sequence)); err != nil {
		r.logger.Warnf("Failed to record issued sequence %d: %v", sequence, err)
	}
}

// LastIssuedSequence returns the recorded sequence, or 0 when none was
// ever recorded.
func (r *ReportRepository) LastIssuedSequence(ctx context.Context) int {
	payload, err := r.db.GetRecord(ctx, r.tableName(), sequenceKey)
	if err != nil {
		return 0
	}
	sequence, err := strconv.Atoi(payload)
	if err != nil {
		return 0
	}
	return sequence
}
