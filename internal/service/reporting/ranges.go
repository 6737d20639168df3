package reporting

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RangeQuery holds the raw report range parameters.
type RangeQuery struct {
	Type  string
	Date  string
	Month string
	Year  string
	From  string
	To    string
}

// ParseRange turns a daily, monthly or custom query into a closed range in
// loc. A date-only custom end covers that whole day.
func ParseRange(q RangeQuery, loc *time.Location) (models.ReportRange, error) {
	switch q.Type {
	case "daily":
		day, err := time.ParseInLocation(dateLayout, q.Date, loc)
		if err != nil {
			return models.ReportRange{}, fmt.Errorf("daily report date %q: %w", q.Date, models.ErrInvalidInput)
		}
		return DayRange(day), nil

	case "monthly":
		month, err := strconv.Atoi(q.Month)
		if err != nil || month < 1 || month > 12 {
			return models.ReportRange{}, fmt.Errorf("monthly report month %q: %w", q.Month, models.ErrInvalidInput)
		}
		year, err := strconv.Atoi(q.Year)
		if err != nil || year < 1 {
			return models.ReportRange{}, fmt.Errorf("monthly report year %q: %w", q.Year, models.ErrInvalidInput)
		}
		return MonthRange(year, time.Month(month), loc), nil

	case "custom":
		start, _, err := parseBound(q.From, loc)
		if err != nil {
			return models.ReportRange{}, fmt.Errorf("custom report from %q: %w", q.From, models.ErrInvalidInput)
		}
		end, dateOnly, err := parseBound(q.To, loc)
		if err != nil {
			return models.ReportRange{}, fmt.Errorf("custom report to %q: %w", q.To, models.ErrInvalidInput)
		}
		if dateOnly {
			end = endOfDay(end)
		}
		if end.Before(start) {
			return models.ReportRange{}, fmt.Errorf("custom report ends before it starts: %w", models.ErrInvalidInput)
		}
		return models.ReportRange{Start: start, End: end}, nil

	default:
		return models.ReportRange{}, fmt.Errorf("unknown report type %q: %w", q.Type, models.ErrInvalidInput)
	}
}

// DayRange covers the calendar day of t in t's location.
func DayRange(t time.Time) models.ReportRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return models.ReportRange{Start: start, End: endOfDay(start)}
}

// MonthRange covers a whole calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) models.ReportRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return models.ReportRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func parseBound(value string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, false, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
