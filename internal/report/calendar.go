package report

import (
	"math"
	"time"
)

// WorkingDays counts Monday to Friday in the given month.
func WorkingDays(year int, month time.Month) int {
	count := 0
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == month {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
		d = d.AddDate(0, 0, 1)
	}
	return count
}

func AttendanceRate(present, workingDays int) int {
	if workingDays <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(workingDays) * 100))
}

// MonthBounds returns the first and last calendar day of the month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func Summarize(date string, rows []DailyRow) DailySummary {
	s := DailySummary{Date: date, TotalEmployees: len(rows)}
	for _, r := range rows {
		if r.CheckInTime == nil {
			s.Absent++
			continue
		}
		s.Present++
		if r.CheckOutTime != nil {
			s.Completed++
		}
	}
	return s
}

func BuildMonthly(year int, month time.Month, counts []MonthlyCount) MonthlyReport {
	wd := WorkingDays(year, month)
	records := make([]MonthlyRecord, len(counts))
	for i, c := range counts {
		records[i] = MonthlyRecord{
			UserID:          c.UserID,
			Name:            c.Name,
			TotalPresent:    c.TotalPresent,
			ValidCheckins:   c.ValidCheckins,
			InvalidCheckins: c.InvalidCheckins,
			TotalAbsent:     wd - c.TotalPresent,
			AttendanceRate:  AttendanceRate(c.TotalPresent, wd),
		}
	}
	return MonthlyReport{
		Year:        year,
		Month:       int(month),
		WorkingDays: wd,
		Records:     records,
	}
}
