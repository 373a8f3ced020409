package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownLanguage = errors.New("unknown language")

// Language is the URL-path language code of a murli.
type Language string

const (
	Gujarati Language = "gu"
	Hindi    Language = "hi"
	English  Language = "en"

	DefaultLanguage = Gujarati
)

type LanguageOption struct {
	Value Language `json:"value"`
	Label string   `json:"label"`
}

var languageOptions = []LanguageOption{
	{Value: Gujarati, Label: "ગુજરાતી"},
	{Value: Hindi, Label: "Hindi"},
	{Value: English, Label: "English"},
}

// Languages returns the selectable languages in display order.
func Languages() []LanguageOption {
	out := make([]LanguageOption, len(languageOptions))
	copy(out, languageOptions)
	return out
}

func ParseLanguage(s string) (Language, error) {
	for _, opt := range languageOptions {
		if string(opt.Value) == s {
			return opt.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

func (l Language) Valid() bool {
	_, err := ParseLanguage(string(l))
	return err == nil
}

func (l Language) Label() string {
	for _, opt := range languageOptions {
		if opt.Value == l {
			return opt.Label
		}
	}
	return string(l)
}

// Next cycles through the options, wrapping after the last one.
func (l Language) Next() Language {
	for i, opt := range languageOptions {
		if opt.Value == l {
			return languageOptions[(i+1)%len(languageOptions)].Value
		}
	}
	return DefaultLanguage
}
