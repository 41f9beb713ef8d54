package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jmtec-reports/models"
	"jmtec-reports/services"
	"jmtec-reports/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockReportService implements services.ReportServiceInterface for testing
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ListReports(ctx context.Context) (*models.ReportListEnvelope, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportListEnvelope), args.Error(1)
}

func (m *MockReportService) SearchReports(ctx context.Context, filter *models.ReportFilter) (*models.ReportListEnvelope, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportListEnvelope), args.Error(1)
}

func (m *MockReportService) GetReport(ctx context.Context, reportNumber string) (*models.ServiceReport, error) {
	args := m.Called(ctx, reportNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceReport), args.Error(1)
}

func (m *MockReportService) LookupReport(ctx context.Context, key string) (*models.ServiceReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceReport), args.Error(1)
}

func (m *MockReportService) CreateReport(ctx context.Context, req *models.CreateReportRequest) (*models.ReportEnvelope, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportEnvelope), args.Error(1)
}

func (m *MockReportService) UpdateReport(ctx context.Context, reportNumber string, req *models.UpdateReportRequest) (*models.ReportEnvelope, error) {
	args := m.Called(ctx, reportNumber, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReportEnvelope), args.Error(1)
}

func (m *MockReportService) DeleteReport(ctx context.Context, reportNumber string) (*models.SyncStatus, error) {
	args := m.Called(ctx, reportNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncStatus), args.Error(1)
}

func (m *MockReportService) NextReportNumber(ctx context.Context) (string, bool) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1)
}

func (m *MockReportService) CurrentSequence(ctx context.Context) (int, bool) {
	args := m.Called(ctx)
	return args.Int(0), args.Bool(1)
}

// ReportControllerTestSuite contains the test suite for ReportController
type ReportControllerTestSuite struct {
	suite.Suite
	controller  *ReportController
	mockService *MockReportService
	router      *gin.Engine
}

func (suite *ReportControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockService = &MockReportService{}
	suite.controller = NewReportController(context.Background(), suite.mockService, logger.NewLogger("error", "text"))

	suite.router = gin.New()
	reports := suite.router.Group("/api/v1/reports")
	{
		reports.GET("", suite.controller.GetReports)
		reports.POST("", suite.controller.CreateReport)
		reports.GET("/search", suite.controller.SearchReports)
		reports.GET("/lookup", suite.controller.LookupReport)
		reports.GET("/next-number", suite.controller.NextReportNumber)
		reports.GET("/:number", suite.controller.GetReport)
		reports.PUT("/:number", suite.controller.UpdateReport)
		reports.DELETE("/:number", suite.controller.DeleteReport)
	}
}

func TestReportControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportControllerTestSuite))
}

func (suite *ReportControllerTestSuite) perform(method, target string, body interface{}) (*httptest.ResponseRecorder, models.APIResponse) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, req)

	var response models.APIResponse
	if recorder.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(suite.T(), json.Unmarshal(recorder.Body.Bytes(), &response))
	}
	return recorder, response
}

func validCreateRequest() *models.CreateReportRequest {
	return &models.CreateReportRequest{
		ServiceDate:  "2025-06-18",
		CompanyName:  "Posto Alfa",
		TaxID:        "11.222.333/0001-81",
		ServiceTypes: []models.ServiceType{models.ServiceTypePreventive},
	}
}

func (suite *ReportControllerTestSuite) TestCreateReportSuccess() {
	envelope := &models.ReportEnvelope{
		Report: &models.ServiceReport{ReportNumber: "REL-2025-001"},
		Sync:   models.SyncStatus{Synced: true},
	}
	suite.mockService.On("CreateReport", mock.Anything, mock.Anything).Return(envelope, nil)

	recorder, response := suite.perform(http.MethodPost, "/api/v1/reports", validCreateRequest())

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)
	assert.Equal(suite.T(), "success", response.Status)
	assert.Equal(suite.T(), "Report created successfully", response.Message)
}

func (suite *ReportControllerTestSuite) TestCreateReportOfflineMessage() {
	envelope := &models.ReportEnvelope{
		Report: &models.ServiceReport{ReportNumber: "REL-2025-001"},
		Sync:   models.SyncStatus{Synced: false, Warning: "report saved locally; remote API unavailable"},
	}
	suite.mockService.On("CreateReport", mock.Anything, mock.Anything).Return(envelope, nil)

	recorder, response := suite.perform(http.MethodPost, "/api/v1/reports", validCreateRequest())

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)
	assert.Equal(suite.T(), "Report created locally; remote sync pending", response.Message)
}

func (suite *ReportControllerTestSuite) TestCreateReportRejectsInvalidCNPJ() {
	request := validCreateRequest()
	request.TaxID = "11.222.333/0001-99"

	recorder, response := suite.perform(http.MethodPost, "/api/v1/reports", request)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "ValidationError", response.Error.Type)
	assert.Contains(suite.T(), response.Error.Details, "not a valid CNPJ")
	suite.mockService.AssertNotCalled(suite.T(), "CreateReport", mock.Anything, mock.Anything)
}

func (suite *ReportControllerTestSuite) TestCreateReportRejectsMissingFields() {
	recorder, response := suite.perform(http.MethodPost, "/api/v1/reports", &models.CreateReportRequest{})

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), response.Error.Details, "is required")
}

func (suite *ReportControllerTestSuite) TestGetReportsPagination() {
	reports := make([]*models.ServiceReport, 0, 15)
	for i := 0; i < 15; i++ {
		reports = append(reports, &models.ServiceReport{ReportNumber: "REL-2025-001"})
	}
	envelope := &models.ReportListEnvelope{Reports: reports, RemoteAvailable: true}
	suite.mockService.On("ListReports", mock.Anything).Return(envelope, nil)

	recorder, response := suite.perform(http.MethodGet, "/api/v1/reports?page=2&limit=10", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	data := response.Data.(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(suite.T(), float64(2), pagination["page"])
	assert.Equal(suite.T(), float64(15), pagination["total"])
	assert.Equal(suite.T(), float64(2), pagination["total_pages"])
	assert.Equal(suite.T(), false, pagination["has_next"])
	assert.Equal(suite.T(), true, pagination["has_previous"])
	assert.Len(suite.T(), data["reports"], 5)
	assert.Equal(suite.T(), true, data["remote_available"])
}

func (suite *ReportControllerTestSuite) TestSearchReportsRejectsUnknownPeriod() {
	recorder, response := suite.perform(http.MethodGet, "/api/v1/reports/search?period=lastYear", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "period", response.Error.Field)
	suite.mockService.AssertNotCalled(suite.T(), "SearchReports", mock.Anything, mock.Anything)
}

func (suite *ReportControllerTestSuite) TestSearchReportsBuildsFilter() {
	envelope := &models.ReportListEnvelope{Reports: []*models.ServiceReport{}, RemoteAvailable: true}
	suite.mockService.On("SearchReports", mock.Anything, mock.MatchedBy(func(f *models.ReportFilter) bool {
		return f.CompanyNameSubstring == "Posto" &&
			f.Period == models.PeriodToday &&
			len(f.ServiceTypes) == 2
	})).Return(envelope, nil)

	recorder, _ := suite.perform(http.MethodGet,
		"/api/v1/reports/search?companyName=Posto&period=today&serviceTypes=preventive,corrective", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReportControllerTestSuite) TestGetReportNotFound() {
	suite.mockService.On("GetReport", mock.Anything, "REL-2025-404").Return(nil, services.ErrReportNotFound)

	recorder, response := suite.perform(http.MethodGet, "/api/v1/reports/REL-2025-404", nil)

	assert.Equal(suite.T(), http.StatusNotFound, recorder.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "NotFoundError", response.Error.Type)
}

func (suite *ReportControllerTestSuite) TestLookupReportRequiresKey() {
	recorder, response := suite.perform(http.MethodGet, "/api/v1/reports/lookup", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "key", response.Error.Field)
}

func (suite *ReportControllerTestSuite) TestLookupReportByCompanyName() {
	report := &models.ServiceReport{ReportNumber: "REL-2025-001", CompanyName: "Posto Alfa"}
	suite.mockService.On("LookupReport", mock.Anything, "Posto Alfa").Return(report, nil)

	recorder, response := suite.perform(http.MethodGet, "/api/v1/reports/lookup?key=Posto+Alfa", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), "success", response.Status)
}

func (suite *ReportControllerTestSuite) TestUpdateReportNotFound() {
	suite.mockService.On("UpdateReport", mock.Anything, "REL-2025-404", mock.Anything).
		Return(nil, services.ErrReportNotFound)

	recorder, _ := suite.perform(http.MethodPut, "/api/v1/reports/REL-2025-404",
		&models.UpdateReportRequest{CompanyName: "Posto Beta"})

	assert.Equal(suite.T(), http.StatusNotFound, recorder.Code)
}

func (suite *ReportControllerTestSuite) TestDeleteReportRequiresConfirmation() {
	recorder, response := suite.perform(http.MethodDelete, "/api/v1/reports/REL-2025-001", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "ConfirmationError", response.Error.Type)
	assert.Equal(suite.T(), "confirm", response.Error.Field)
	suite.mockService.AssertNotCalled(suite.T(), "DeleteReport", mock.Anything, mock.Anything)
}

func (suite *ReportControllerTestSuite) TestDeleteReportConfirmed() {
	suite.mockService.On("DeleteReport", mock.Anything, "REL-2025-001").
		Return(&models.SyncStatus{Synced: true}, nil)

	recorder, response := suite.perform(http.MethodDelete, "/api/v1/reports/REL-2025-001?confirm=true", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	assert.Equal(suite.T(), "Report deleted successfully", response.Message)
}

func (suite *ReportControllerTestSuite) TestNextReportNumber() {
	suite.mockService.On("NextReportNumber", mock.Anything).Return("REL-2025-051", true)

	recorder, response := suite.perform(http.MethodGet, "/api/v1/reports/next-number", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
	data := response.Data.(map[string]interface{})
	assert.Equal(suite.T(), "REL-2025-051", data["number"])
	assert.Equal(suite.T(), true, data["synced"])
}
