// Package printform renders a service report as a standalone printable
// HTML page laid out like the company's paper form.
package printform

import (
	"bytes"
	"html/template"

	"jmtec-reports/models"
	"jmtec-reports/utils"

	"github.com/shopspring/decimal"
)

const (
	// The paper form has fixed-height tables; short reports are padded
	// with blank rows so the layout never collapses.
	equipmentRows = 6
	partsRows     = 8
)

type formData struct {
	Report        *models.ServiceReport
	EquipmentList []models.Equipment
	PartsList     []models.Part
}

var funcMap = template.FuncMap{
	"formatDate":     utils.FormatDate,
	"formatCNPJ":     utils.FormatCNPJ,
	"formatCurrency": utils.FormatCurrency,
	"checkbox": func(checked bool) string {
		if checked {
			return "☑"
		}
		return "☐"
	},
	"hasType": func(r *models.ServiceReport, t string) bool {
		return r.HasServiceType(models.ServiceType(t))
	},
	"isZero": func(d decimal.Decimal) bool {
		return d.IsZero()
	},
}

var formTemplate = template.Must(template.New("printform").Funcs(funcMap).Parse(formHTML))

// Render produces the full HTML document for one report.
func Render(report *models.ServiceReport) (string, error) {
	data := formData{
		Report:        report,
		EquipmentList: padEquipment(report.EquipmentList),
		PartsList:     padParts(report.PartsList),
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func padEquipment(list []models.Equipment) []models.Equipment {
	out := make([]models.Equipment, 0, equipmentRows)
	out = append(out, list...)
	for len(out) < equipmentRows {
		out = append(out, models.Equipment{})
	}
	return out[:equipmentRows]
}

func padParts(list []models.Part) []models.Part {
	out := make([]models.Part, 0, partsRows)
	out = append(out, list...)
	for len(out) < partsRows {
		out = append(out, models.Part{})
	}
	return out[:partsRows]
}
