package bindings

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/formidable/pkg/form"
)

const (
	// DateLayout is the layout of the date half of a DateTime value.
	DateLayout = "2006-01-02"
	// TimeLayout is the layout of the time half of a DateTime value.
	TimeLayout = "15:04"
)

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// DateTime binds separate date and time inputs to a single string field
// holding "YYYY-MM-DDTHH:MM". Values are formatted in their own offset, no
// conversion to local time takes place.
type DateTime struct {
	Field string
	// Min and Max optionally bound the value, in any accepted layout. The
	// bound helpers split them for the date and time inputs.
	Min string
	Max string
}

func (d DateTime) parse(f Form) (time.Time, string, bool) {
	s, _ := f.FieldValue(d.Field).(string)
	return parseDateTime(s)
}

// splitDateTime returns the date and time halves of s. An unparsable s is
// returned as both halves; an empty s yields "".
func splitDateTime(s string) (date, clock string) {
	t, raw, ok := parseDateTime(s)
	if !ok {
		return raw, raw
	}
	return t.Format(DateLayout), t.Format(TimeLayout)
}

// MinDate returns the date half of Min, or "" if Min is unset.
func (d DateTime) MinDate() string {
	date, _ := splitDateTime(d.Min)
	return date
}

// MinTime returns the time half of Min, or "" if Min is unset.
func (d DateTime) MinTime() string {
	_, clock := splitDateTime(d.Min)
	return clock
}

// MaxDate returns the date half of Max, or "" if Max is unset.
func (d DateTime) MaxDate() string {
	date, _ := splitDateTime(d.Max)
	return date
}

// MaxTime returns the time half of Max, or "" if Max is unset.
func (d DateTime) MaxTime() string {
	_, clock := splitDateTime(d.Max)
	return clock
}

func parseDateTime(s string) (time.Time, string, bool) {
	if s == "" {
		return time.Time{}, "", false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, s, true
		}
	}
	return time.Time{}, s, false
}

// Date returns the date half of the value, the raw value if it cannot be
// parsed, or "" if it is unset.
func (d DateTime) Date(f Form) string {
	s, _ := f.FieldValue(d.Field).(string)
	date, _ := splitDateTime(s)
	return date
}

// Time returns the time half of the value, the raw value if it cannot be
// parsed, or "" if it is unset.
func (d DateTime) Time(f Form) string {
	s, _ := f.FieldValue(d.Field).(string)
	_, clock := splitDateTime(s)
	return clock
}

// SetDate replaces the date half, keeping the current time or midnight.
func (d DateTime) SetDate(f Form, date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("bindings: invalid date %q: %w", date, err)
	}
	clock := "00:00"
	if t, _, ok := d.parse(f); ok {
		clock = t.Format(TimeLayout)
	}
	f.SetField(d.Field, date+"T"+clock, form.EventChange)
	return nil
}

// SetTime replaces the time half. The field must already hold a date.
func (d DateTime) SetTime(f Form, clock string) error {
	if _, err := time.Parse(TimeLayout, strings.TrimSpace(clock)); err != nil {
		return fmt.Errorf("bindings: invalid time %q: %w", clock, err)
	}
	t, _, ok := d.parse(f)
	if !ok {
		return fmt.Errorf("bindings: field %q has no date to attach %s to", d.Field, clock)
	}
	f.SetField(d.Field, t.Format(DateLayout)+"T"+strings.TrimSpace(clock), form.EventChange)
	return nil
}
