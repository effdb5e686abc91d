package stay

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"lodge/shared/timezone"
)

const (
	DateLayout      = "02/01/2006"
	TimestampLayout = "2006-01-02 15:04:05"
)

var datePattern = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/(\d{4})$`)

var (
	ErrDateFormat   = errors.New("date is not in dd/mm/yyyy format")
	ErrDateNotExist = errors.New("date does not exist")
)

// Date is a calendar day, held as midnight in the application timezone.
type Date struct {
	t time.Time
}

// ParseDate reads a dd/mm/yyyy date. Surrounding whitespace is ignored. Days that do not
// exist in their month, such as 31/02/2024, are rejected rather than rolled over.
func ParseDate(text string) (Date, error) {
	match := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return Date{}, ErrDateFormat
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])

	t, ok := timezone.Date(year, time.Month(month), day)
	if !ok {
		return Date{}, fmt.Errorf("%w: %s", ErrDateNotExist, strings.TrimSpace(text))
	}

	return Date{t: t}, nil
}

// DateOf returns the calendar day of the instant t in the application timezone. Stay
// timestamps are stored as instants, so rows read back in the database session's zone land
// on the same day they were written for.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}

	t = timezone.ToAppTime(t)
	day, _ := timezone.Date(t.Year(), t.Month(), t.Day())

	return Date{t: day}
}

// Today returns the calendar day of now in the application timezone.
func Today(now time.Time) Date {
	return Date{t: timezone.StartOfDay(now)}
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String renders the date as dd/mm/yyyy.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.t.Format(DateLayout)
}

// Timestamp renders the date as the persisted "yyyy-mm-dd 00:00:00" form.
func (d Date) Timestamp() string {
	return d.t.Format(TimestampLayout)
}

// DaysBetween counts calendar days from start to end; it is negative when end is earlier.
func DaysBetween(start, end Date) int {
	s := time.Date(start.t.Year(), start.t.Month(), start.t.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.t.Year(), end.t.Month(), end.t.Day(), 0, 0, 0, 0, time.UTC)

	return int(e.Sub(s).Hours() / 24)
}
