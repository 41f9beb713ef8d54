package services

import (
	"testing"

	"jmtec-reports/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// MergeTestSuite defines a test suite for local/remote reconciliation
type MergeTestSuite struct {
	suite.Suite
}

func TestMergeTestSuite(t *testing.T) {
	suite.Run(t, new(MergeTestSuite))
}

func report(number, companyName string) *models.ServiceReport {
	return &models.ServiceReport{
		ReportNumber: number,
		CompanyName:  companyName,
		ServiceDate:  "2025-06-15",
	}
}

func (suite *MergeTestSuite) TestRemoteWinsOnCollision() {
	local := []*models.ServiceReport{
		report("REL-2025-001", "Posto Alfa"),
		report("REL-2025-002", "Posto Beta (local edit)"),
	}
	remoteReports := []*models.ServiceReport{
		report("REL-2025-002", "Posto Beta"),
		report("REL-2025-003", "Posto Gama"),
	}

	merged := MergeReports(local, remoteReports)

	assert.Len(suite.T(), merged, 3)

	byNumber := make(map[string]*models.ServiceReport)
	for _, r := range merged {
		byNumber[r.ReportNumber] = r
	}

	assert.Equal(suite.T(), "Posto Beta", byNumber["REL-2025-002"].CompanyName)
	assert.Equal(suite.T(), models.SourceRemote, byNumber["REL-2025-002"].Source)
	assert.Equal(suite.T(), models.SourceLocal, byNumber["REL-2025-001"].Source)
	assert.Equal(suite.T(), models.SourceRemote, byNumber["REL-2025-003"].Source)
}

func (suite *MergeTestSuite) TestCollidedEntryMovesToRemotePosition() {
	local := []*models.ServiceReport{
		report("REL-2025-001", "Posto Alfa"),
		report("REL-2025-002", "Posto Beta"),
	}
	remoteReports := []*models.ServiceReport{
		report("REL-2025-003", "Posto Gama"),
		report("REL-2025-001", "Posto Alfa"),
	}

	merged := MergeReports(local, remoteReports)

	numbers := make([]string, 0, len(merged))
	for _, r := range merged {
		numbers = append(numbers, r.ReportNumber)
	}

	// REL-2025-001 was re-inserted by the remote side, so it follows
	// REL-2025-003 in final-write order.
	assert.Equal(suite.T(), []string{"REL-2025-002", "REL-2025-003", "REL-2025-001"}, numbers)
}

func (suite *MergeTestSuite) TestEmptySides() {
	assert.Empty(suite.T(), MergeReports(nil, nil))

	onlyLocal := MergeReports([]*models.ServiceReport{report("REL-2025-001", "Posto Alfa")}, nil)
	assert.Len(suite.T(), onlyLocal, 1)
	assert.Equal(suite.T(), models.SourceLocal, onlyLocal[0].Source)

	onlyRemote := MergeReports(nil, []*models.ServiceReport{report("REL-2025-001", "Posto Alfa")})
	assert.Len(suite.T(), onlyRemote, 1)
	assert.Equal(suite.T(), models.SourceRemote, onlyRemote[0].Source)
}

func (suite *MergeTestSuite) TestInputsAreNotMutated() {
	localReport := report("REL-2025-001", "Posto Alfa")
	remoteReport := report("REL-2025-001", "Posto Alfa")

	MergeReports([]*models.ServiceReport{localReport}, []*models.ServiceReport{remoteReport})

	// Source tagging happens on copies
	assert.Equal(suite.T(), models.RecordSource(""), localReport.Source)
	assert.Equal(suite.T(), models.RecordSource(""), remoteReport.Source)
}
