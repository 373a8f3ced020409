package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	DefaultBaseURL = "https://madhubanmurli.org"

	// FallbackContent replaces the document whenever a fetch fails.
	FallbackContent = "Failed to load content. Please try again later."
)

var (
	ErrEmptyDate   = errors.New("date is empty")
	ErrInvalidDate = errors.New("invalid date")
)

// Selection is the (date, language) key that identifies one murli.
type Selection struct {
	Date     time.Time
	Language Language
}

func Today(lang Language) Selection {
	return Selection{Date: Day(time.Now()), Language: lang}
}

// Day truncates t to a calendar date in t's location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func ParseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, ErrEmptyDate
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func ParseSelection(date, lang string) (Selection, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Selection{}, err
	}
	l, err := ParseLanguage(lang)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Date: d, Language: l}, nil
}

func (s Selection) Validate() error {
	if s.Date.IsZero() {
		return ErrEmptyDate
	}
	if !s.Language.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, s.Language)
	}
	return nil
}

func (s Selection) DateString() string {
	return s.Date.Format(DateLayout)
}

// Equal compares calendar dates, ignoring clock and location.
func (s Selection) Equal(o Selection) bool {
	return s.Language == o.Language && s.DateString() == o.DateString()
}

func (s Selection) String() string {
	return string(s.Language) + "/" + s.DateString()
}

// HTMLURL is the address of the pre-rendered document.
func (s Selection) HTMLURL(base string) string {
	return fmt.Sprintf("%s/murlis/%s/html/murli-%s.html", strings.TrimRight(base, "/"), s.Language, s.DateString())
}

// PDFURL is the companion download; nothing checks that it exists.
func (s Selection) PDFURL(base string) string {
	return fmt.Sprintf("%s/murlis/%s/pdf/murli-%s.pdf", strings.TrimRight(base, "/"), s.Language, s.DateString())
}

func (s Selection) AddDays(n int) Selection {
	return Selection{Date: s.Date.AddDate(0, 0, n), Language: s.Language}
}

func (s Selection) WithLanguage(l Language) Selection {
	return Selection{Date: s.Date, Language: l}
}
