package printform

import (
	"strings"
	"testing"
	"time"

	"jmtec-reports/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PrintFormTestSuite contains the test suite for the print form renderer
type PrintFormTestSuite struct {
	suite.Suite
	report *models.ServiceReport
}

func (suite *PrintFormTestSuite) SetupTest() {
	suite.report = &models.ServiceReport{
		ReportNumber:      "REL-2025-044",
		ServiceDate:       "2025-06-18",
		StartTime:         "08:00",
		EndTime:           "12:30",
		TotalDuration:     "04:30",
		CompanyName:       "Posto Alfa Ltda",
		TaxID:             "11222333000181",
		Address:           "Av. Brasil, 1200",
		CityState:         "Curitiba/PR",
		StateRegistration: "1234567890",
		ServiceTypes:      []models.ServiceType{models.ServiceTypePreventive, models.ServiceTypeExtra},
		WorkDescription:   "Troca de bicos e aferição das bombas 1 e 2.",
		EquipmentList: []models.Equipment{
			{NozzleNumber: "01", Brand: "Wayne"},
		},
		PartsList: []models.Part{
			{Description: "Bico 1/2", Quantity: 2, UnitPrice: decimal.NewFromInt(50), LineTotal: decimal.NewFromInt(100)},
		},
		PartsTotal:     decimal.NewFromInt(100),
		TechnicianName: "Carlos Souza",
		CreatedAt:      time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC),
	}
}

func TestPrintFormTestSuite(t *testing.T) {
	suite.Run(t, new(PrintFormTestSuite))
}

func (suite *PrintFormTestSuite) TestRenderContainsReportData() {
	html, err := Render(suite.report)
	require.NoError(suite.T(), err)

	assert.Contains(suite.T(), html, "REL-2025-044")
	assert.Contains(suite.T(), html, "Posto Alfa Ltda")
	assert.Contains(suite.T(), html, "Carlos Souza")
	assert.Contains(suite.T(), html, "18/06/2025")
	assert.Contains(suite.T(), html, "11.222.333/0001-81")
}

func (suite *PrintFormTestSuite) TestRenderChecksSelectedServiceTypes() {
	html, err := Render(suite.report)
	require.NoError(suite.T(), err)

	assert.Contains(suite.T(), html, "☑ Preventiva")
	assert.Contains(suite.T(), html, "☑ Extra")
	assert.Contains(suite.T(), html, "☐ Corretiva")
	assert.Contains(suite.T(), html, "☐ Pendência")
}

func (suite *PrintFormTestSuite) TestRenderFormatsCurrency() {
	html, err := Render(suite.report)
	require.NoError(suite.T(), err)

	assert.Contains(suite.T(), html, "R$ 100,00")
}

func (suite *PrintFormTestSuite) TestRenderPadsShortTables() {
	html, err := Render(suite.report)
	require.NoError(suite.T(), err)

	// One equipment row plus padding keeps the paper layout intact:
	// 6 equipment rows, 8 part rows and the two header rows at least
	assert.GreaterOrEqual(suite.T(), strings.Count(html, "<tr>"), equipmentRows+partsRows+2)
}

func (suite *PrintFormTestSuite) TestRenderEmptyReport() {
	report := &models.ServiceReport{ReportNumber: "REL-2025-001"}

	html, err := Render(report)
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), html, "REL-2025-001")
}

func (suite *PrintFormTestSuite) TestRenderEscapesMarkup() {
	suite.report.CompanyName = `Posto <script>alert("x")</script>`

	html, err := Render(suite.report)
	require.NoError(suite.T(), err)
	assert.NotContains(suite.T(), html, "<script>alert")
}
