package services

import (
	"jmtec-reports/models"
)

// MergeReports reconciles the local and remote views of the report set.
// Report number is the identity; when both sides know a number the
// remote copy wins, since the central API is authoritative. Every
// result is tagged with the side that supplied it.
//
// Order is the insertion order of final writes: a local report that is
// later overwritten by a remote copy moves to the remote copy's
// position.
func MergeReports(local, remote []*models.ServiceReport) []*models.ServiceReport {
	merged := make(map[string]*models.ServiceReport, len(local)+len(remote))
	order := make([]string, 0, len(local)+len(remote))

	insert := func(report *models.ServiceReport, source models.RecordSource) {
		tagged := *report
		tagged.Source = source
		if _, seen := merged[tagged.ReportNumber]; seen {
			// Re-inserting moves the entry to the back.
			for i, number := range order {
				if number == tagged.ReportNumber {
					order = append(order[:i], order[i+1:]...)
					break
				}
			}
		}
		merged[tagged.ReportNumber] = &tagged
		order = append(order, tagged.ReportNumber)
	}

	for _, report := range local {
		insert(report, models.SourceLocal)
	}
	for _, report := range remote {
		insert(report, models.SourceRemote)
	}

	result := make([]*models.ServiceReport, 0, len(order))
	for _, number := range order {
		result = append(result, merged[number])
	}
	return result
}
