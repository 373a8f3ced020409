package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
)

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		lang   string
		errors map[string]string
	}{
		{name: "valid", date: "2024-01-15", lang: "en", errors: map[string]string{}},
		{name: "empty date", date: "", lang: "gu", errors: map[string]string{"date": "must be provided"}},
		{name: "bad format", date: "15-01-2024", lang: "hi", errors: map[string]string{"date": "must be in YYYY-MM-DD format"}},
		{name: "impossible date", date: "2024-02-30", lang: "hi", errors: map[string]string{"date": "must be a valid calendar date"}},
		{name: "bad language", date: "2024-01-15", lang: "fr", errors: map[string]string{"lang": "must be one of gu, hi, en"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			sel := ValidateSelection(v, tt.date, tt.lang)

			assert.Equal(t, tt.errors, v.Errors)
			if v.Valid() {
				assert.Equal(t, tt.date, sel.DateString())
				assert.Equal(t, tt.lang, string(sel.Language))
			}
		})
	}
}

func TestValidateFontSize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  domain.FontSize
		valid bool
	}{
		{name: "absent", raw: "", want: domain.DefaultFontSize, valid: true},
		{name: "integer", raw: "22", want: 22, valid: true},
		{name: "below minimum", raw: "-3", want: domain.MinFontSize, valid: true},
		{name: "not a number", raw: "abc", want: domain.DefaultFontSize, valid: false},
		{name: "fraction", raw: "12.5", want: domain.DefaultFontSize, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			got := ValidateFontSize(v, tt.raw)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, v.Valid())
			if !tt.valid {
				assert.Equal(t, "must be an integer", v.Errors["font"])
			}
		})
	}
}
