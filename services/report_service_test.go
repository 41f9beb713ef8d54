package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/remote"
	"jmtec-reports/repository"
	"jmtec-reports/utils/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// noopLogger satisfies logger.Logger for tests that do not assert on logs
type noopLogger struct{}

func (noopLogger) Debug(args ...interface{})                        {}
func (noopLogger) Debugf(format string, args ...interface{})        {}
func (noopLogger) Info(args ...interface{})                         {}
func (noopLogger) Infof(format string, args ...interface{})         {}
func (noopLogger) Warn(args ...interface{})                         {}
func (noopLogger) Warnf(format string, args ...interface{})         {}
func (noopLogger) Error(args ...interface{})                        {}
func (noopLogger) Errorf(format string, args ...interface{})        {}
func (noopLogger) Fatal(args ...interface{})                        {}
func (noopLogger) Fatalf(format string, args ...interface{})        {}
func (n noopLogger) WithFields(map[string]interface{}) logger.Logger { return n }

// MockReportRepository implements repository.ReportRepositoryInterface for testing
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveLocal(ctx context.Context, report *models.ServiceReport) {
	m.Called(ctx, report)
}

func (m *MockReportRepository) LoadLocal(ctx context.Context, reportNumber string) (*models.ServiceReport, error) {
	args := m.Called(ctx, reportNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceReport), args.Error(1)
}

func (m *MockReportRepository) ListLocal(ctx context.Context) ([]*models.ServiceReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceReport), args.Error(1)
}

func (m *MockReportRepository) DeleteLocal(ctx context.Context, reportNumber string) error {
	args := m.Called(ctx, reportNumber)
	return args.Error(0)
}

func (m *MockReportRepository) RecordIssuedSequence(ctx context.Context, sequence int) {
	m.Called(ctx, sequence)
}

func (m *MockReportRepository) LastIssuedSequence(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// MockReportClient implements remote.ReportClientInterface for testing
type MockReportClient struct {
	mock.Mock
}

func (m *MockReportClient) ListReports(ctx context.Context) ([]*models.ServiceReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceReport), args.Error(1)
}

func (m *MockReportClient) SearchReports(ctx context.Context, filter *models.ReportFilter) ([]*models.ServiceReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceReport), args.Error(1)
}

func (m *MockReportClient) GetReport(ctx context.Context, reportNumber string) (*models.ServiceReport, error) {
	args := m.Called(ctx, reportNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceReport), args.Error(1)
}

func (m *MockReportClient) CreateReport(ctx context.Context, report *models.ServiceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportClient) UpdateReport(ctx context.Context, report *models.ServiceReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportClient) DeleteReport(ctx context.Context, reportNumber string) error {
	args := m.Called(ctx, reportNumber)
	return args.Error(0)
}

func (m *MockReportClient) NextReportNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockReportClient) CurrentReportNumber(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// ReportServiceTestSuite contains the test suite for ReportService
type ReportServiceTestSuite struct {
	suite.Suite
	service    *ReportService
	mockRepo   *MockReportRepository
	mockClient *MockReportClient
	ctx        context.Context
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = &MockReportRepository{}
	suite.mockClient = &MockReportClient{}
	suite.service = NewReportService(suite.mockRepo, suite.mockClient, noopLogger{})
	suite.service.now = func() time.Time {
		return time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)
	}
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func networkErr() error {
	return &remote.NetworkError{Op: "GET /reports", Err: errors.New("connection refused")}
}

func (suite *ReportServiceTestSuite) TestCreateReportComputesDerivedFields() {
	req := &models.CreateReportRequest{
		ReportNumber: "REL-2025-044",
		ServiceDate:  "2025-06-18",
		StartTime:    "22:00",
		EndTime:      "02:00",
		CompanyName:  "  Posto Alfa  ",
		TaxID:        "11.222.333/0001-81",
		ServiceTypes: []models.ServiceType{models.ServiceTypeCorrective},
		PartsList: []models.Part{
			{Description: "Bico 1/2", Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
			{Description: "Mangueira", Quantity: 1, UnitPrice: decimal.NewFromInt(30)},
			{Description: "", Quantity: 0, UnitPrice: decimal.Zero}, // blank row
		},
		EquipmentList: []models.Equipment{
			{NozzleNumber: "01", Brand: "Wayne"},
			{}, // blank row
		},
	}

	suite.mockRepo.On("SaveLocal", suite.ctx, mock.Anything).Return()
	suite.mockClient.On("CreateReport", suite.ctx, mock.Anything).Return(nil)

	envelope, err := suite.service.CreateReport(suite.ctx, req)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), envelope)

	report := envelope.Report
	assert.True(suite.T(), envelope.Sync.Synced)
	assert.Equal(suite.T(), "REL-2025-044", report.ReportNumber)
	assert.Equal(suite.T(), "Posto Alfa", report.CompanyName)
	assert.Equal(suite.T(), "11222333000181", report.TaxID)
	assert.Equal(suite.T(), "04:00", report.TotalDuration)

	// Blank rows dropped, line totals and parts total recomputed
	assert.Len(suite.T(), report.PartsList, 2)
	assert.Len(suite.T(), report.EquipmentList, 1)
	assert.True(suite.T(), report.PartsList[0].LineTotal.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), report.PartsList[1].LineTotal.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), report.PartsTotal.Equal(decimal.NewFromInt(130)))

	suite.mockRepo.AssertCalled(suite.T(), "SaveLocal", suite.ctx, mock.Anything)
	suite.mockClient.AssertCalled(suite.T(), "CreateReport", suite.ctx, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestCreateReportNumbersFromRemote() {
	req := &models.CreateReportRequest{
		ServiceDate:  "2025-06-18",
		CompanyName:  "Posto Alfa",
		TaxID:        "11222333000181",
		ServiceTypes: []models.ServiceType{models.ServiceTypePreventive},
	}

	suite.mockClient.On("NextReportNumber", suite.ctx).Return("REL-2025-051", nil)
	suite.mockRepo.On("RecordIssuedSequence", suite.ctx, 51).Return()
	suite.mockRepo.On("SaveLocal", suite.ctx, mock.Anything).Return()
	suite.mockClient.On("CreateReport", suite.ctx, mock.Anything).Return(nil)

	envelope, err := suite.service.CreateReport(suite.ctx, req)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "REL-2025-051", envelope.Report.ReportNumber)
	suite.mockRepo.AssertCalled(suite.T(), "RecordIssuedSequence", suite.ctx, 51)
}

func (suite *ReportServiceTestSuite) TestCreateReportOfflineFallsBack() {
	req := &models.CreateReportRequest{
		ServiceDate:  "2025-06-18",
		CompanyName:  "Posto Alfa",
		TaxID:        "11222333000181",
		ServiceTypes: []models.ServiceType{models.ServiceTypePreventive},
	}

	suite.mockClient.On("NextReportNumber", suite.ctx).Return("", networkErr())
	suite.mockRepo.On("SaveLocal", suite.ctx, mock.Anything).Return()
	suite.mockClient.On("CreateReport", suite.ctx, mock.Anything).Return(networkErr())

	envelope, err := suite.service.CreateReport(suite.ctx, req)
	require.NoError(suite.T(), err)

	// Deterministic fallback number for the current year
	assert.Equal(suite.T(), "REL-2025-001", envelope.Report.ReportNumber)
	assert.False(suite.T(), envelope.Sync.Synced)
	assert.NotEmpty(suite.T(), envelope.Sync.Warning)

	// The local save still happened
	suite.mockRepo.AssertCalled(suite.T(), "SaveLocal", suite.ctx, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestListReportsMergesBothSides() {
	local := []*models.ServiceReport{
		{ReportNumber: "REL-2025-001", CompanyName: "Posto Alfa", ServiceDate: "2025-06-01"},
		{ReportNumber: "REL-2025-002", CompanyName: "Posto Beta (stale)", ServiceDate: "2025-06-02"},
	}
	remoteReports := []*models.ServiceReport{
		{ReportNumber: "REL-2025-002", CompanyName: "Posto Beta", ServiceDate: "2025-06-02"},
		{ReportNumber: "REL-2025-003", CompanyName: "Posto Gama", ServiceDate: "2025-06-03"},
	}

	suite.mockRepo.On("ListLocal", suite.ctx).Return(local, nil)
	suite.mockClient.On("ListReports", suite.ctx).Return(remoteReports, nil)

	envelope, err := suite.service.ListReports(suite.ctx)
	require.NoError(suite.T(), err)

	assert.True(suite.T(), envelope.RemoteAvailable)
	assert.Len(suite.T(), envelope.Reports, 3)

	for _, r := range envelope.Reports {
		if r.ReportNumber == "REL-2025-002" {
			assert.Equal(suite.T(), "Posto Beta", r.CompanyName)
			assert.Equal(suite.T(), models.SourceRemote, r.Source)
		}
	}
}

func (suite *ReportServiceTestSuite) TestListReportsRemoteDown() {
	local := []*models.ServiceReport{
		{ReportNumber: "REL-2025-001", CompanyName: "Posto Alfa", ServiceDate: "2025-06-01"},
	}

	suite.mockRepo.On("ListLocal", suite.ctx).Return(local, nil)
	suite.mockClient.On("ListReports", suite.ctx).Return(nil, networkErr())

	envelope, err := suite.service.ListReports(suite.ctx)
	require.NoError(suite.T(), err)

	assert.False(suite.T(), envelope.RemoteAvailable)
	require.Len(suite.T(), envelope.Reports, 1)
	assert.Equal(suite.T(), models.SourceLocal, envelope.Reports[0].Source)
}

func (suite *ReportServiceTestSuite) TestGetReportPrefersLocal() {
	stored := &models.ServiceReport{ReportNumber: "REL-2025-001", CompanyName: "Posto Alfa"}
	suite.mockRepo.On("LoadLocal", suite.ctx, "REL-2025-001").Return(stored, nil)

	report, err := suite.service.GetReport(suite.ctx, "REL-2025-001")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), models.SourceLocal, report.Source)
	suite.mockClient.AssertNotCalled(suite.T(), "GetReport", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestGetReportFallsBackToRemoteAndCaches() {
	remoteCopy := &models.ServiceReport{ReportNumber: "REL-2025-009", CompanyName: "Posto Gama"}

	suite.mockRepo.On("LoadLocal", suite.ctx, "REL-2025-009").Return(nil, repository.ErrReportNotFound)
	suite.mockClient.On("GetReport", suite.ctx, "REL-2025-009").Return(remoteCopy, nil)
	suite.mockRepo.On("SaveLocal", suite.ctx, remoteCopy).Return()

	report, err := suite.service.GetReport(suite.ctx, "REL-2025-009")
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), models.SourceRemote, report.Source)
	suite.mockRepo.AssertCalled(suite.T(), "SaveLocal", suite.ctx, remoteCopy)
}

func (suite *ReportServiceTestSuite) TestGetReportNotFoundAnywhere() {
	suite.mockRepo.On("LoadLocal", suite.ctx, "REL-2025-404").Return(nil, repository.ErrReportNotFound)
	suite.mockClient.On("GetReport", suite.ctx, "REL-2025-404").Return(nil, networkErr())

	_, err := suite.service.GetReport(suite.ctx, "REL-2025-404")
	assert.ErrorIs(suite.T(), err, ErrReportNotFound)
}

func (suite *ReportServiceTestSuite) TestLookupReportFallsBackToCompanySearch() {
	stored := &models.ServiceReport{ReportNumber: "REL-2025-007", CompanyName: "Posto Gama", ServiceDate: "2025-06-10"}

	suite.mockRepo.On("LoadLocal", suite.ctx, "Gama").Return(nil, repository.ErrReportNotFound)
	suite.mockClient.On("GetReport", suite.ctx, "Gama").Return(nil, networkErr())
	suite.mockRepo.On("ListLocal", suite.ctx).Return([]*models.ServiceReport{stored}, nil)
	suite.mockClient.On("SearchReports", suite.ctx, mock.Anything).Return(nil, networkErr())

	report, err := suite.service.LookupReport(suite.ctx, "Gama")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "REL-2025-007", report.ReportNumber)
}

func (suite *ReportServiceTestSuite) TestUpdateReportRecomputesTotals() {
	stored := &models.ServiceReport{
		ReportNumber: "REL-2025-001",
		CompanyName:  "Posto Alfa",
		ServiceDate:  "2025-06-01",
		StartTime:    "08:00",
		EndTime:      "12:00",
	}
	suite.mockRepo.On("LoadLocal", suite.ctx, "REL-2025-001").Return(stored, nil)
	suite.mockRepo.On("SaveLocal", suite.ctx, mock.Anything).Return()
	suite.mockClient.On("UpdateReport", suite.ctx, mock.Anything).Return(nil)

	envelope, err := suite.service.UpdateReport(suite.ctx, "REL-2025-001", &models.UpdateReportRequest{
		EndTime: "18:30",
		PartsList: []models.Part{
			{Description: "Filtro", Quantity: 3, UnitPrice: decimal.NewFromFloat(19.9)},
		},
	})
	require.NoError(suite.T(), err)

	report := envelope.Report
	assert.Equal(suite.T(), "10:30", report.TotalDuration)
	assert.True(suite.T(), report.PartsTotal.Equal(decimal.NewFromFloat(59.7)))
	require.NotNil(suite.T(), report.ModifiedAt)
	assert.Equal(suite.T(), "Posto Alfa", report.CompanyName)
}

func (suite *ReportServiceTestSuite) TestUpdateReportNotFound() {
	suite.mockRepo.On("LoadLocal", suite.ctx, "REL-2025-404").Return(nil, repository.ErrReportNotFound)
	suite.mockClient.On("GetReport", suite.ctx, "REL-2025-404").Return(nil, networkErr())

	_, err := suite.service.UpdateReport(suite.ctx, "REL-2025-404", &models.UpdateReportRequest{CompanyName: "X"})
	assert.ErrorIs(suite.T(), err, ErrReportNotFound)
}

func (suite *ReportServiceTestSuite) TestDeleteReportSurvivesRemoteFailure() {
	suite.mockRepo.On("DeleteLocal", suite.ctx, "REL-2025-001").Return(nil)
	suite.mockClient.On("DeleteReport", suite.ctx, "REL-2025-001").Return(networkErr())

	sync, err := suite.service.DeleteReport(suite.ctx, "REL-2025-001")
	require.NoError(suite.T(), err)

	assert.False(suite.T(), sync.Synced)
	assert.NotEmpty(suite.T(), sync.Warning)
}

func (suite *ReportServiceTestSuite) TestDeleteReportLocalFailureIsFatal() {
	suite.mockRepo.On("DeleteLocal", suite.ctx, "REL-2025-001").Return(errors.New("store unavailable"))

	_, err := suite.service.DeleteReport(suite.ctx, "REL-2025-001")
	assert.Error(suite.T(), err)
	suite.mockClient.AssertNotCalled(suite.T(), "DeleteReport", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestCurrentSequenceFallsBackToLocalRecord() {
	suite.mockClient.On("CurrentReportNumber", suite.ctx).Return(0, networkErr())
	suite.mockRepo.On("LastIssuedSequence", suite.ctx).Return(42)

	current, synced := suite.service.CurrentSequence(suite.ctx)
	assert.Equal(suite.T(), 42, current)
	assert.False(suite.T(), synced)
}

func (suite *ReportServiceTestSuite) TestNextReportNumberReportsSyncState() {
	suite.mockClient.On("NextReportNumber", suite.ctx).Return("REL-2025-052", nil)
	suite.mockRepo.On("RecordIssuedSequence", suite.ctx, 52).Return()

	number, synced := suite.service.NextReportNumber(suite.ctx)
	assert.Equal(suite.T(), "REL-2025-052", number)
	assert.True(suite.T(), synced)
}
