// Package remote talks to the central reports API. Every failure to
// reach it is wrapped in a NetworkError so callers can tell "remote is
// down, keep working locally" apart from real errors.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/utils/logger"

	"github.com/tidwall/gjson"
)

// NetworkError reports a failed exchange with the remote API: either
// transport failure (StatusCode 0) or a non-2xx response.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s failed: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("remote %s failed: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is a remote exchange failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ReportClientInterface defines the contract for the remote reports API
type ReportClientInterface interface {
	ListReports(ctx context.Context) ([]*models.ServiceReport, error)
	SearchReports(ctx context.Context, filter *models.ReportFilter) ([]*models.ServiceReport, error)
	GetReport(ctx context.Context, reportNumber string) (*models.ServiceReport, error)
	CreateReport(ctx context.Context, report *models.ServiceReport) error
	UpdateReport(ctx context.Context, report *models.ServiceReport) error
	DeleteReport(ctx context.Context, reportNumber string) error
	NextReportNumber(ctx context.Context) (string, error)
	CurrentReportNumber(ctx context.Context) (int, error)
}

// ReportClient is the HTTP implementation of ReportClientInterface.
type ReportClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewReportClient builds a client for the API at cfg.RemoteBaseURL.
func NewReportClient(cfg *models.Config, log logger.Logger) *ReportClient {
	timeout := cfg.RemoteTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReportClient{
		baseURL:    strings.TrimRight(cfg.RemoteBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// request performs one exchange and returns the response body. Any
// transport error or non-2xx status comes back as a NetworkError.
func (c *ReportClient) request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	op := method + " " + path
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("Remote unreachable (%s): %v", op, err)
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warnf("Remote rejected %s: status %d", op, resp.StatusCode)
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode}
	}

	return data, nil
}

// decodeData extracts the "data" member of the remote API's
// {success, data} envelope. Responses that are already a bare array or
// object pass through unchanged.
func decodeData(body []byte, out interface{}) error {
	payload := body
	if data := gjson.GetBytes(body, "data"); data.Exists() {
		payload = []byte(data.Raw)
	}
	return json.Unmarshal(payload, out)
}

// ListReports fetches every report known to the remote API.
func (c *ReportClient) ListReports(ctx context.Context) ([]*models.ServiceReport, error) {
	data, err := c.request(ctx, http.MethodGet, "/reports", nil)
	if err != nil {
		return nil, err
	}
	var reports []*models.ServiceReport
	if err := decodeData(data, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode report list: %w", err)
	}
	return reports, nil
}

// SearchReports asks the remote API to evaluate the filter server-side.
func (c *ReportClient) SearchReports(ctx context.Context, filter *models.ReportFilter) ([]*models.ServiceReport, error) {
	params := url.Values{}
	if filter.NumberSubstring != "" {
		params.Set("number", filter.NumberSubstring)
	}
	if filter.CompanyNameSubstring != "" {
		params.Set("companyName", filter.CompanyNameSubstring)
	}
	if filter.TaxIDDigits != "" {
		params.Set("taxId", filter.TaxIDDigits)
	}
	if filter.Period != "" {
		params.Set("period", string(filter.Period))
	}
	if filter.DateFrom != "" {
		params.Set("dateFrom", filter.DateFrom)
	}
	if filter.DateTo != "" {
		params.Set("dateTo", filter.DateTo)
	}
	if len(filter.ServiceTypes) > 0 {
		types := make([]string, 0, len(filter.ServiceTypes))
		for _, t := range filter.ServiceTypes {
			types = append(types, string(t))
		}
		params.Set("serviceTypes", strings.Join(types, ","))
	}

	path := "/reports/search"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	data, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var reports []*models.ServiceReport
	if err := decodeData(data, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}
	return reports, nil
}

// GetReport fetches a single report by number.
func (c *ReportClient) GetReport(ctx context.Context, reportNumber string) (*models.ServiceReport, error) {
	data, err := c.request(ctx, http.MethodGet, "/reports/"+url.PathEscape(reportNumber), nil)
	if err != nil {
		return nil, err
	}
	var report models.ServiceReport
	if err := decodeData(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// CreateReport pushes a new report to the remote API.
func (c *ReportClient) CreateReport(ctx context.Context, report *models.ServiceReport) error {
	_, err := c.request(ctx, http.MethodPost, "/reports", report)
	return err
}

// UpdateReport replaces the remote copy of an existing report.
func (c *ReportClient) UpdateReport(ctx context.Context, report *models.ServiceReport) error {
	_, err := c.request(ctx, http.MethodPut, "/reports/"+url.PathEscape(report.ReportNumber), report)
	return err
}

// DeleteReport removes the remote copy.
func (c *ReportClient) DeleteReport(ctx context.Context, reportNumber string) error {
	_, err := c.request(ctx, http.MethodDelete, "/reports/"+url.PathEscape(reportNumber), nil)
	return err
}

// NextReportNumber asks the numbering endpoint for the next free
// number. The endpoint keeps its original envelope: {success, numero}.
func (c *ReportClient) NextReportNumber(ctx context.Context) (string, error) {
	data, err := c.request(ctx, http.MethodGet, "/next-report-number", nil)
	if err != nil {
		return "", err
	}

	if !gjson.GetBytes(data, "success").Bool() {
		return "", &NetworkError{Op: "GET /next-report-number", Err: fmt.Errorf("numbering endpoint reported failure")}
	}
	number := gjson.GetBytes(data, "numero").String()
	if number == "" {
		return "", &NetworkError{Op: "GET /next-report-number", Err: fmt.Errorf("numbering endpoint returned empty number")}
	}
	return number, nil
}

// CurrentReportNumber returns the sequence of the last number the
// remote handed out. Envelope: {success, numero_atual}.
func (c *ReportClient) CurrentReportNumber(ctx context.Context) (int, error) {
	data, err := c.request(ctx, http.MethodGet, "/current-report-number", nil)
	if err != nil {
		return 0, err
	}

	if !gjson.GetBytes(data, "success").Bool() {
		return 0, &NetworkError{Op: "GET /current-report-number", Err: fmt.Errorf("numbering endpoint reported failure")}
	}
	return int(gjson.GetBytes(data, "numero_atual").Int()), nil
}
