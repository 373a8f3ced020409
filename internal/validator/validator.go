// Package validator accumulates field-level validation errors.
package validator

import (
	"regexp"
	"strconv"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

// DateRX matches the ISO calendar date accepted by the date picker.
var DateRX = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validator holds a map of field names to their validation error messages.
// A Validator with an empty Errors map is considered valid.
type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for key.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}

// ValidateSelection checks raw date and language input and returns the
// parsed selection when both are acceptable.
func ValidateSelection(v *Validator, date, lang string) domain.Selection {
	codes := make([]string, 0, 3)
	for _, opt := range domain.Languages() {
		codes = append(codes, string(opt.Value))
	}

	v.Check(date != "", "date", "must be provided")
	v.Check(date == "" || Matches(date, DateRX), "date", "must be in YYYY-MM-DD format")
	v.Check(In(lang, codes...), "lang", "must be one of gu, hi, en")

	if !v.Valid() {
		return domain.Selection{}
	}

	sel, err := domain.ParseSelection(date, lang)
	if err != nil {
		v.AddError("date", "must be a valid calendar date")
		return domain.Selection{}
	}
	return sel
}

// ValidateFontSize accepts an empty value, meaning the default size, or an
// integer. Integers below the minimum are lifted to it.
func ValidateFontSize(v *Validator, raw string) domain.FontSize {
	if raw == "" {
		return domain.DefaultFontSize
	}
	n, err := strconv.Atoi(raw)
	v.Check(err == nil, "font", "must be an integer")
	if err != nil {
		return domain.DefaultFontSize
	}
	return domain.FontSize(n).Clamp()
}
