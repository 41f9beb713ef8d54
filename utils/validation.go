package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateCNPJ checks a Brazilian company tax ID (CNPJ). The input may
// carry mask punctuation; it must reduce to exactly 14 digits, must not
// be a run of one repeated digit, and both check digits must match the
// weighted mod-11 checksum.
func ValidateCNPJ(raw string) bool {
	d := DigitsOnly(raw)
	if len(d) != 14 {
		return false
	}

	allSame := true
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	if checkDigit(d[:12], 5) != int(d[12]-'0') {
		return false
	}
	if checkDigit(d[:13], 6) != int(d[13]-'0') {
		return false
	}
	return true
}

// checkDigit computes one CNPJ verification digit. Weights start at
// firstWeight and count down to 2, then restart at 9.
func checkDigit(digits string, firstWeight int) int {
	weight := firstWeight
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// ValidateStateRegistration checks an IE (state registration): either
// the literal exemption marker ISENTO/ISENTA or 8 to 14 digits.
func ValidateStateRegistration(raw string) bool {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "ISENTO" || upper == "ISENTA" {
		return true
	}
	d := DigitsOnly(raw)
	return len(d) >= 8 && len(d) <= 14
}

// RegisterValidators installs the domain validation tags on v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
		return ValidateCNPJ(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("stateregistration", func(fl validator.FieldLevel) bool {
		return ValidateStateRegistration(fl.Field().String())
	})
}
