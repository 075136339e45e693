package utils

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// English + common rules, as used for every free-text date in the app
func NewWhen() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// Parse a date-time given as 2006-01-02T15:04:05, as a bare 2006-01-02
// (midnight), or as free text like "tomorrow 9am" relative to now.
func ParseDateTime(s string, w *when.Parser, now time.Time) (civil.DateTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.DateTime{}, fmt.Errorf("ParseDateTime: date is blank")
	}
	if dt, err := civil.ParseDateTime(s); err == nil {
		return dt, nil
	}
	if d, err := civil.ParseDate(s); err == nil {
		return civil.DateTime{Date: d}, nil
	}

	result, err := w.Parse(s, now)
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("ParseDateTime: %w", err)
	}
	if result == nil {
		return civil.DateTime{}, fmt.Errorf("ParseDateTime: can't understand %q", s)
	}
	return civil.DateTimeOf(result.Time.In(now.Location())), nil
}

// Same as ParseDateTime but only the date part is kept
func ParseDate(s string, w *when.Parser, now time.Time) (civil.Date, error) {
	dt, err := ParseDateTime(s, w, now)
	if err != nil {
		return civil.Date{}, err
	}
	return dt.Date, nil
}
