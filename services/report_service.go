package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/remote"
	"jmtec-reports/repository"
	"jmtec-reports/utils"
	"jmtec-reports/utils/logger"

	"github.com/shopspring/decimal"
)

// ErrReportNotFound is returned when a report exists neither locally
// nor remotely.
var ErrReportNotFound = errors.New("report not found")

// ReportService owns the report lifecycle: every write lands in the
// local store first and is then pushed to the remote API best-effort.
// Remote failures degrade to warnings, never to lost work.
type ReportService struct {
	reportRepo repository.ReportRepositoryInterface
	client     remote.ReportClientInterface
	logger     logger.Logger
	now        func() time.Time
}

func NewReportService(reportRepo repository.ReportRepositoryInterface, client remote.ReportClientInterface, logger logger.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		client:     client,
		logger:     logger,
		now:        time.Now,
	}
}

// ListReports returns the merged local and remote view. When the remote
// API is unreachable the local view is served alone and the envelope
// says so.
func (s *ReportService) ListReports(ctx context.Context) (*models.ReportListEnvelope, error) {
	local, err := s.reportRepo.ListLocal(ctx)
	if err != nil {
		return nil, err
	}

	remoteReports, err := s.client.ListReports(ctx)
	if err != nil {
		if remote.IsNetworkError(err) {
			s.logger.Warnf("Listing from local store only: %v", err)
			return &models.ReportListEnvelope{
				Reports:         MergeReports(local, nil),
				RemoteAvailable: false,
			}, nil
		}
		return nil, err
	}

	return &models.ReportListEnvelope{
		Reports:         MergeReports(local, remoteReports),
		RemoteAvailable: true,
	}, nil
}

// SearchReports evaluates the filter over the merged view. The remote
// side filters server-side; the local side is filtered here, so search
// keeps working offline.
func (s *ReportService) SearchReports(ctx context.Context, filter *models.ReportFilter) (*models.ReportListEnvelope, error) {
	local, err := s.reportRepo.ListLocal(ctx)
	if err != nil {
		return nil, err
	}
	localMatches := FilterReports(local, filter, s.now())

	remoteMatches, err := s.client.SearchReports(ctx, filter)
	if err != nil {
		if remote.IsNetworkError(err) {
			s.logger.Warnf("Searching local store only: %v", err)
			return &models.ReportListEnvelope{
				Reports:         MergeReports(localMatches, nil),
				RemoteAvailable: false,
			}, nil
		}
		return nil, err
	}

	return &models.ReportListEnvelope{
		Reports:         MergeReports(localMatches, remoteMatches),
		RemoteAvailable: true,
	}, nil
}

// GetReport returns one report, preferring the local copy so the edit
// flow works offline. A remote hit is cached locally on the way out.
func (s *ReportService) GetReport(ctx context.Context, reportNumber string) (*models.ServiceReport, error) {
	report, err := s.reportRepo.LoadLocal(ctx, reportNumber)
	if err == nil {
		report.Source = models.SourceLocal
		return report, nil
	}
	if !errors.Is(err, repository.ErrReportNotFound) {
		return nil, err
	}

	remoteReport, err := s.client.GetReport(ctx, reportNumber)
	if err != nil {
		if remote.IsNetworkError(err) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	s.reportRepo.SaveLocal(ctx, remoteReport)
	remoteReport.Source = models.SourceRemote
	return remoteReport, nil
}

// LookupReport resolves a lookup key that may be either a report number
// or a company name: exact number first, then number-substring and
// company-name searches over the merged view.
func (s *ReportService) LookupReport(ctx context.Context, key string) (*models.ServiceReport, error) {
	report, err := s.GetReport(ctx, key)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, ErrReportNotFound) {
		return nil, err
	}

	for _, filter := range []*models.ReportFilter{
		{NumberSubstring: key},
		{CompanyNameSubstring: key},
	} {
		envelope, err := s.SearchReports(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(envelope.Reports) > 0 {
			return envelope.Reports[0], nil
		}
	}
	return nil, ErrReportNotFound
}

// CreateReport builds a report from the request, numbers it if needed,
// saves it locally and pushes it to the remote API.
func (s *ReportService) CreateReport(ctx context.Context, req *models.CreateReportRequest) (*models.ReportEnvelope, error) {
	if req == nil {
		return nil, errors.New("report request is required")
	}

	sync := models.SyncStatus{Synced: true}

	reportNumber := strings.TrimSpace(req.ReportNumber)
	if reportNumber == "" {
		number, warning := s.nextNumber(ctx)
		reportNumber = number
		if warning != "" {
			sync.Warning = warning
		}
	}

	report := &models.ServiceReport{
		ReportNumber:      reportNumber,
		ServiceDate:       req.ServiceDate,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		CompanyName:       strings.TrimSpace(req.CompanyName),
		TaxID:             utils.DigitsOnly(req.TaxID),
		Address:           strings.TrimSpace(req.Address),
		CityState:         strings.TrimSpace(req.CityState),
		StateRegistration: strings.TrimSpace(req.StateRegistration),
		ServiceTypes:      req.ServiceTypes,
		WorkDescription:   req.WorkDescription,
		EquipmentList:     dropBlankEquipment(req.EquipmentList),
		PartsList:         dropBlankParts(req.PartsList),
		ETC:               req.ETC,
		ETA:               req.ETA,
		GC:                req.GC,
		GT:                req.GT,
		TestNotes:         req.TestNotes,
		TechnicianName:    strings.TrimSpace(req.TechnicianName),
		CreatedAt:         s.now().UTC(),
	}
	recalculate(report)

	s.reportRepo.SaveLocal(ctx, report)

	if err := s.client.CreateReport(ctx, report); err != nil {
		if !remote.IsNetworkError(err) {
			return nil, err
		}
		s.logger.Warnf("Report %s saved locally, remote push failed: %v", report.ReportNumber, err)
		sync.Synced = false
		if sync.Warning == "" {
			sync.Warning = "report saved locally; remote API unavailable"
		}
	}

	return &models.ReportEnvelope{Report: report, Sync: sync}, nil
}

// UpdateReport applies the request to the stored report. Zero-valued
// fields keep the stored value; non-nil slices replace wholesale.
func (s *ReportService) UpdateReport(ctx context.Context, reportNumber string, req *models.UpdateReportRequest) (*models.ReportEnvelope, error) {
	if req == nil {
		return nil, errors.New("report request is required")
	}

	report, err := s.GetReport(ctx, reportNumber)
	if err != nil {
		return nil, err
	}

	applyUpdate(report, req)
	recalculate(report)
	modified := s.now().UTC()
	report.ModifiedAt = &modified
	report.Source = ""

	s.reportRepo.SaveLocal(ctx, report)

	sync := models.SyncStatus{Synced: true}
	if err := s.client.UpdateReport(ctx, report); err != nil {
		if !remote.IsNetworkError(err) {
			return nil, err
		}
		s.logger.Warnf("Report %s updated locally, remote push failed: %v", reportNumber, err)
		sync.Synced = false
		sync.Warning = "report updated locally; remote API unavailable"
	}

	return &models.ReportEnvelope{Report: report, Sync: sync}, nil
}

// DeleteReport removes the report locally and best-effort remotely.
// The local removal is the one that must succeed.
func (s *ReportService) DeleteReport(ctx context.Context, reportNumber string) (*models.SyncStatus, error) {
	if err := s.reportRepo.DeleteLocal(ctx, reportNumber); err != nil {
		return nil, err
	}

	sync := &models.SyncStatus{Synced: true}
	if err := s.client.DeleteReport(ctx, reportNumber); err != nil {
		if !remote.IsNetworkError(err) {
			return nil, err
		}
		s.logger.Warnf("Report %s deleted locally, remote delete failed: %v", reportNumber, err)
		sync.Synced = false
		sync.Warning = "report deleted locally; remote API unavailable"
	}
	return sync, nil
}

// NextReportNumber returns the next free number, falling back to a
// deterministic local number when the remote numbering endpoint is
// unreachable.
func (s *ReportService) NextReportNumber(ctx context.Context) (string, bool) {
	number, warning := s.nextNumber(ctx)
	return number, warning == ""
}

// CurrentSequence reports where numbering stands: the remote sequence
// when reachable, otherwise the last sequence this instance recorded.
func (s *ReportService) CurrentSequence(ctx context.Context) (int, bool) {
	current, err := s.client.CurrentReportNumber(ctx)
	if err != nil {
		s.logger.Warnf("Falling back to locally recorded sequence: %v", err)
		return s.reportRepo.LastIssuedSequence(ctx), false
	}
	return current, true
}

func (s *ReportService) nextNumber(ctx context.Context) (number, warning string) {
	number, err := s.client.NextReportNumber(ctx)
	if err != nil {
		fallback := fmt.Sprintf("REL-%d-001", s.now().Year())
		s.logger.Warnf("Numbering endpoint unreachable, using %s: %v", fallback, err)
		return fallback, "remote numbering unavailable; number may collide"
	}

	if sequence := trailingSequence(number); sequence > 0 {
		s.reportRepo.RecordIssuedSequence(ctx, sequence)
	}
	return number, ""
}

// trailingSequence extracts the numeric suffix of REL-<year>-<seq>.
func trailingSequence(reportNumber string) int {
	idx := strings.LastIndex(reportNumber, "-")
	if idx < 0 || idx == len(reportNumber)-1 {
		return 0
	}
	sequence := 0
	for _, r := range reportNumber[idx+1:] {
		if r < '0' || r > '9' {
			return 0
		}
		sequence = sequence*10 + int(r-'0')
	}
	return sequence
}

// recalculate enforces the derived-field invariants: line totals, the
// parts total and the duration are always recomputed, never trusted.
func recalculate(report *models.ServiceReport) {
	total := decimal.Zero
	for i := range report.PartsList {
		part := &report.PartsList[i]
		part.LineTotal = part.UnitPrice.Mul(decimal.NewFromInt(int64(part.Quantity)))
		total = total.Add(part.LineTotal)
	}
	report.PartsTotal = total
	report.TotalDuration = utils.CalculateTotalDuration(report.StartTime, report.EndTime)
}

func applyUpdate(report *models.ServiceReport, req *models.UpdateReportRequest) {
	if req.ServiceDate != "" {
		report.ServiceDate = req.ServiceDate
	}
	if req.StartTime != "" {
		report.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		report.EndTime = req.EndTime
	}
	if req.CompanyName != "" {
		report.CompanyName = strings.TrimSpace(req.CompanyName)
	}
	if req.TaxID != "" {
		report.TaxID = utils.DigitsOnly(req.TaxID)
	}
	if req.Address != "" {
		report.Address = strings.TrimSpace(req.Address)
	}
	if req.CityState != "" {
		report.CityState = strings.TrimSpace(req.CityState)
	}
	if req.StateRegistration != "" {
		report.StateRegistration = strings.TrimSpace(req.StateRegistration)
	}
	if req.ServiceTypes != nil {
		report.ServiceTypes = req.ServiceTypes
	}
	if req.WorkDescription != "" {
		report.WorkDescription = req.WorkDescription
	}
	if req.EquipmentList != nil {
		report.EquipmentList = dropBlankEquipment(req.EquipmentList)
	}
	if req.PartsList != nil {
		report.PartsList = dropBlankParts(req.PartsList)
	}
	if req.ETC != "" {
		report.ETC = req.ETC
	}
	if req.ETA != "" {
		report.ETA = req.ETA
	}
	if req.GC != "" {
		report.GC = req.GC
	}
	if req.GT != "" {
		report.GT = req.GT
	}
	if req.TestNotes != "" {
		report.TestNotes = req.TestNotes
	}
	if req.TechnicianName != "" {
		report.TechnicianName = strings.TrimSpace(req.TechnicianName)
	}
}

// dropBlankEquipment discards rows the user left empty on the form.
func dropBlankEquipment(list []models.Equipment) []models.Equipment {
	out := make([]models.Equipment, 0, len(list))
	for _, e := range list {
		if e == (models.Equipment{}) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// dropBlankParts discards rows with no description and no amounts.
func dropBlankParts(list []models.Part) []models.Part {
	out := make([]models.Part, 0, len(list))
	for _, p := range list {
		if strings.TrimSpace(p.Description) == "" && p.Quantity == 0 && p.UnitPrice.IsZero() {
			continue
		}
		out = append(out, p)
	}
	return out
}
