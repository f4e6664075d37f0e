package offday

type AddMyOffDaysRequest struct {
	Dates []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
}

type CreateOffDayRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	OffDate string `json:"off_date" binding:"required,datetime=2006-01-02"`
}

type ListOffDaysFilter struct {
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type OffDayResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	OffDate   string `json:"off_date"`
	CreatedAt string `json:"created_at"`
}

type AddOffDaysResponse struct {
	Inserted int64 `json:"inserted"`
}
