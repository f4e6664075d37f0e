package report

import "time"

type DailyFilter struct {
	Date string `form:"date"`
}

type MonthlyFilter struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

// DailyRow is one employee joined with that day's check-in and check-out.
type DailyRow struct {
	UserID        string     `json:"user_id" gorm:"column:user_id"`
	Name          string     `json:"name" gorm:"column:name"`
	CheckInTime   *time.Time `json:"check_in_time" gorm:"column:check_in_time"`
	CheckInValid  *bool      `json:"check_in_valid" gorm:"column:check_in_valid"`
	CheckOutTime  *time.Time `json:"check_out_time" gorm:"column:check_out_time"`
	CheckOutValid *bool      `json:"check_out_valid" gorm:"column:check_out_valid"`
	LocationName  *string    `json:"location_name" gorm:"column:location_name"`
}

type DailySummary struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"total_employees"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	Completed      int    `json:"completed"`
}

type DailyReport struct {
	Summary DailySummary `json:"summary"`
	Records []DailyRow   `json:"records"`
}

type MonthlyCount struct {
	UserID          string `gorm:"column:user_id"`
	Name            string `gorm:"column:name"`
	TotalPresent    int    `gorm:"column:total_present"`
	ValidCheckins   int    `gorm:"column:valid_checkins"`
	InvalidCheckins int    `gorm:"column:invalid_checkins"`
}

type MonthlyRecord struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	TotalPresent    int    `json:"total_present"`
	ValidCheckins   int    `json:"valid_checkins"`
	InvalidCheckins int    `json:"invalid_checkins"`
	TotalAbsent     int    `json:"total_absent"`
	AttendanceRate  int    `json:"attendance_rate"`
}

type MonthlyReport struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	WorkingDays int             `json:"working_days"`
	Records     []MonthlyRecord `json:"records"`
}
