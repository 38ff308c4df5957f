package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDateTime is a timestamp rendered without zone information, in the
// application's timezone.
type LocalDateTime struct {
	time.Time
}

const layout = "2006-01-02 15:04:05"

var appLocation = time.UTC

// SetLocation sets the zone LocalDateTime values are parsed and rendered in.
func SetLocation(loc *time.Location) {
	if loc != nil {
		appLocation = loc
	}
}

func Location() *time.Location {
	return appLocation
}

func NewLocalDateTime(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

// Today returns the current calendar date in loc as midnight UTC, which is
// how dates are stored.
func Today(loc *time.Location, now time.Time) time.Time {
	if loc == nil {
		loc = appLocation
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of date's month as midnight UTC.
func MonthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (ldt LocalDateTime) String() string {
	return ldt.In(appLocation).Format(layout)
}

func (ldt *LocalDateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, appLocation)
	if err != nil {
		return err
	}
	ldt.Time = t
	return nil
}

func (ldt LocalDateTime) MarshalJSON() ([]byte, error) {
	if ldt.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ldt.String() + `"`), nil
}

func (ldt LocalDateTime) Value() (driver.Value, error) {
	if ldt.IsZero() {
		return nil, nil
	}
	return ldt.Time, nil
}

func (ldt *LocalDateTime) Scan(value interface{}) error {
	if value == nil {
		ldt.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		ldt.Time = v
		return nil
	case []byte:
		return ldt.parse(string(v))
	case string:
		return ldt.parse(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDateTime", value)
	}
}

func (ldt *LocalDateTime) parse(s string) error {
	for _, l := range []string{layout, time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.ParseInLocation(l, s, appLocation); err == nil {
			ldt.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as LocalDateTime", s)
}
