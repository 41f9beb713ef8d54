package services

import (
	"strings"
	"time"

	"jmtec-reports/models"
	"jmtec-reports/utils"
)

const isoDate = "2006-01-02"

// EvaluateFilter reports whether report satisfies every criterion in
// filter. Absent criteria always pass, so the empty filter matches
// everything. now anchors the relative periods.
func EvaluateFilter(report *models.ServiceReport, filter *models.ReportFilter, now time.Time) bool {
	if filter == nil || filter.Empty() {
		return true
	}

	if filter.NumberSubstring != "" &&
		!strings.Contains(report.ReportNumber, filter.NumberSubstring) {
		return false
	}

	if filter.CompanyNameSubstring != "" &&
		!strings.Contains(strings.ToLower(report.CompanyName), strings.ToLower(filter.CompanyNameSubstring)) {
		return false
	}

	if filter.TaxIDDigits != "" &&
		!strings.Contains(utils.DigitsOnly(report.TaxID), utils.DigitsOnly(filter.TaxIDDigits)) {
		return false
	}

	if filter.Period != "" && !matchesPeriod(report.ServiceDate, filter, now) {
		return false
	}

	// Date bounds apply whenever supplied, with or without a period.
	if filter.DateFrom != "" || filter.DateTo != "" {
		if _, err := time.Parse(isoDate, report.ServiceDate); err != nil {
			return false
		}
		if filter.DateFrom != "" && report.ServiceDate < filter.DateFrom {
			return false
		}
		if filter.DateTo != "" && report.ServiceDate > filter.DateTo {
			return false
		}
	}

	if len(filter.ServiceTypes) > 0 {
		any := false
		for _, t := range filter.ServiceTypes {
			if report.HasServiceType(t) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	return true
}

func matchesPeriod(serviceDate string, filter *models.ReportFilter, now time.Time) bool {
	date, err := time.Parse(isoDate, serviceDate)
	if err != nil {
		return false
	}

	today := now.Format(isoDate)

	switch filter.Period {
	case models.PeriodToday:
		return serviceDate == today

	case models.PeriodThisWeek:
		// The week starts on the most recent Sunday.
		weekStart := now.AddDate(0, 0, -int(now.Weekday()))
		return serviceDate >= weekStart.Format(isoDate) && serviceDate <= today

	case models.PeriodThisMonth:
		return date.Year() == now.Year() && date.Month() == now.Month()

	case models.PeriodCustom:
		// The bounds themselves are checked by the caller; custom only
		// requires a parseable date, guarded above.
		return true

	default:
		return false
	}
}

// FilterReports applies EvaluateFilter across a slice, keeping order.
func FilterReports(reports []*models.ServiceReport, filter *models.ReportFilter, now time.Time) []*models.ServiceReport {
	if filter == nil || filter.Empty() {
		return reports
	}
	out := make([]*models.ServiceReport, 0, len(reports))
	for _, report := range reports {
		if EvaluateFilter(report, filter, now) {
			out = append(out, report)
		}
	}
	return out
}
