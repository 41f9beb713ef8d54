package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Remote API emits money fields as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type ServiceType string

const (
	ServiceTypePreventive ServiceType = "preventive"
	ServiceTypeCorrective ServiceType = "corrective"
	ServiceTypePending    ServiceType = "pending"
	ServiceTypeExtra      ServiceType = "extra"
)

// RecordSource marks which store last supplied a record during
// reconciliation. It is a merge artifact, never persisted authoritatively.
type RecordSource string

const (
	SourceLocal  RecordSource = "local"
	SourceRemote RecordSource = "remote"
)

// Equipment is one per-nozzle row of the report's equipment table.
type Equipment struct {
	NozzleNumber        string `json:"nozzleNumber"`
	Brand               string `json:"brand"`
	Model               string `json:"model"`
	SerialNumber        string `json:"serialNumber"`
	Product             string `json:"product"`
	CalibrationSeal     string `json:"calibrationSeal"`
	ApprovalOrder       string `json:"approvalOrder"`
	SealRemoved         string `json:"sealRemoved"`
	SealInstalled       string `json:"sealInstalled"`
	RepairSealRemoved   string `json:"repairSealRemoved"`
	RepairSealInstalled string `json:"repairSealInstalled"`
}

// Part is one line of the parts table. LineTotal is always
// Quantity × UnitPrice, recomputed on save, never entered.
type Part struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// ServiceReport is the sole domain entity: one field-service visit to a
// fuel-station customer, identified by its REL-<year>-<sequence> number.
type ServiceReport struct {
	ReportNumber      string        `json:"reportNumber" validate:"required"`
	ServiceDate       string        `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	StartTime         string        `json:"startTime,omitempty"`
	EndTime           string        `json:"endTime,omitempty"`
	TotalDuration     string        `json:"totalDuration,omitempty"`
	CompanyName       string        `json:"companyName" validate:"required"`
	TaxID             string        `json:"taxId,omitempty"`
	Address           string        `json:"address,omitempty"`
	CityState         string        `json:"cityState,omitempty"`
	StateRegistration string        `json:"stateRegistration,omitempty"`
	ServiceTypes      []ServiceType `json:"serviceTypes"`
	WorkDescription   string        `json:"workDescription,omitempty"`

	EquipmentList []Equipment     `json:"equipmentList"`
	PartsList     []Part          `json:"partsList"`
	PartsTotal    decimal.Decimal `json:"partsTotal"`

	// Calibration test readings, free-form.
	ETC       string `json:"etc,omitempty"`
	ETA       string `json:"eta,omitempty"`
	GC        string `json:"gc,omitempty"`
	GT        string `json:"gt,omitempty"`
	TestNotes string `json:"testNotes,omitempty"`

	TechnicianName string `json:"technicianName,omitempty"`

	Source     RecordSource `json:"source,omitempty"`
	CreatedAt  time.Time    `json:"createdAt,omitempty"`
	ModifiedAt *time.Time   `json:"modifiedAt,omitempty"`
}

// CreateReportRequest carries the create form. ReportNumber is optional;
// when absent the service asks the remote numbering endpoint and falls
// back to a locally derived number.
type CreateReportRequest struct {
	ReportNumber      string        `json:"reportNumber,omitempty"`
	ServiceDate       string        `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	StartTime         string        `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime           string        `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	CompanyName       string        `json:"companyName" validate:"required,min=2,max=200"`
	TaxID             string        `json:"taxId" validate:"required,cnpj"`
	Address           string        `json:"address,omitempty" validate:"omitempty,max=300"`
	CityState         string        `json:"cityState,omitempty" validate:"omitempty,max=100"`
	StateRegistration string        `json:"stateRegistration,omitempty" validate:"omitempty,stateregistration"`
	ServiceTypes      []ServiceType `json:"serviceTypes" validate:"required,min=1,dive,oneof=preventive corrective pending extra"`
	WorkDescription   string        `json:"workDescription,omitempty" validate:"omitempty,max=5000"`
	EquipmentList     []Equipment   `json:"equipmentList,omitempty"`
	PartsList         []Part        `json:"partsList,omitempty"`
	ETC               string        `json:"etc,omitempty"`
	ETA               string        `json:"eta,omitempty"`
	GC                string        `json:"gc,omitempty"`
	GT                string        `json:"gt,omitempty"`
	TestNotes         string        `json:"testNotes,omitempty" validate:"omitempty,max=500"`
	TechnicianName    string        `json:"technicianName,omitempty" validate:"omitempty,max=100"`
}

// UpdateReportRequest carries the edit form. Zero-valued fields keep the
// stored value; slices replace wholesale when non-nil.
type UpdateReportRequest struct {
	ServiceDate       string        `json:"serviceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime         string        `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime           string        `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	CompanyName       string        `json:"companyName,omitempty" validate:"omitempty,min=2,max=200"`
	TaxID             string        `json:"taxId,omitempty" validate:"omitempty,cnpj"`
	Address           string        `json:"address,omitempty" validate:"omitempty,max=300"`
	CityState         string        `json:"cityState,omitempty" validate:"omitempty,max=100"`
	StateRegistration string        `json:"stateRegistration,omitempty" validate:"omitempty,stateregistration"`
	ServiceTypes      []ServiceType `json:"serviceTypes,omitempty" validate:"omitempty,dive,oneof=preventive corrective pending extra"`
	WorkDescription   string        `json:"workDescription,omitempty" validate:"omitempty,max=5000"`
	EquipmentList     []Equipment   `json:"equipmentList,omitempty"`
	PartsList         []Part        `json:"partsList,omitempty"`
	ETC               string        `json:"etc,omitempty"`
	ETA               string        `json:"eta,omitempty"`
	GC                string        `json:"gc,omitempty"`
	GT                string        `json:"gt,omitempty"`
	TestNotes         string        `json:"testNotes,omitempty" validate:"omitempty,max=500"`
	TechnicianName    string        `json:"technicianName,omitempty" validate:"omitempty,max=100"`
}

type FilterPeriod string

const (
	PeriodToday     FilterPeriod = "today"
	PeriodThisWeek  FilterPeriod = "thisWeek"
	PeriodThisMonth FilterPeriod = "thisMonth"
	PeriodCustom    FilterPeriod = "custom"
)

// ReportFilter is the search specification. Absent criteria are
// vacuously satisfied.
type ReportFilter struct {
	NumberSubstring      string        `json:"number,omitempty"`
	CompanyNameSubstring string        `json:"companyName,omitempty"`
	TaxIDDigits          string        `json:"taxId,omitempty"`
	Period               FilterPeriod  `json:"period,omitempty"`
	DateFrom             string        `json:"dateFrom,omitempty"`
	DateTo               string        `json:"dateTo,omitempty"`
	ServiceTypes         []ServiceType `json:"serviceTypes,omitempty"`
}

// Empty reports whether no criterion is set.
func (f *ReportFilter) Empty() bool {
	return f.NumberSubstring == "" &&
		f.CompanyNameSubstring == "" &&
		f.TaxIDDigits == "" &&
		f.Period == "" &&
		f.DateFrom == "" &&
		f.DateTo == "" &&
		len(f.ServiceTypes) == 0
}

// HasServiceType reports whether the report carries the given tag.
func (r *ServiceReport) HasServiceType(t ServiceType) bool {
	for _, st := range r.ServiceTypes {
		if st == t {
			return true
		}
	}
	return false
}
