package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCNPJ applies the 00.000.000/0000-00 mask progressively, so
// partial input stays readable while the user is still typing. Input
// beyond 14 digits is truncated.
func FormatCNPJ(raw string) string {
	d := DigitsOnly(raw)
	if len(d) > 14 {
		d = d[:14]
	}
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return fmt.Sprintf("%s.%s", d[:2], d[2:])
	case len(d) <= 8:
		return fmt.Sprintf("%s.%s.%s", d[:2], d[2:5], d[5:])
	case len(d) <= 12:
		return fmt.Sprintf("%s.%s.%s/%s", d[:2], d[2:5], d[5:8], d[8:])
	default:
		return fmt.Sprintf("%s.%s.%s/%s-%s", d[:2], d[2:5], d[5:8], d[8:12], d[12:])
	}
}

// FormatDate renders an ISO date (2006-01-02) as dd/mm/yyyy for
// printing. Unparseable input is returned unchanged.
func FormatDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

// FormatCurrency renders a money amount in Brazilian convention:
// R$ 1.234,56. Amounts are always shown with two decimal places. The
// decimal is formatted from its fixed string form, never through a
// float, so large amounts keep their exact cents.
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	parts := strings.SplitN(fixed, ".", 2)

	grouped := parts[0]
	if units, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
		grouped = ptBR.Sprintf("%v", number.Decimal(units))
	}
	return "R$ " + sign + grouped + "," + parts[1]
}

// CalculateTotalDuration returns the elapsed time between two HH:MM
// clock readings as HH:MM. An end time earlier than the start time is
// taken to mean the service crossed midnight, so 22:00 to 02:00 yields
// 04:00. Empty or malformed input yields an empty string.
func CalculateTotalDuration(startTime, endTime string) string {
	if startTime == "" || endTime == "" {
		return ""
	}
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return ""
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return ""
	}
	diff := end.Sub(start)
	if diff < 0 {
		diff += 24 * time.Hour
	}
	hours := int(diff.Hours())
	minutes := int(diff.Minutes()) % 60
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
