package leave

// CreateLeaveRequest binds from multipart or JSON. AttachmentRef is filled
// by the handler after the upload is stored.
type CreateLeaveRequest struct {
	Type            string `json:"type" form:"type"`
	StartDate       string `json:"start_date" form:"start_date"`
	EndDate         string `json:"end_date" form:"end_date"`
	Reason          string `json:"reason" form:"reason"`
	ReplacementDate string `json:"replacement_date" form:"replacement_date"`
	AttachmentRef   string `json:"-" form:"-"`
}

type UpdateStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

type MyLeavesFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

type QuotaFilter struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

type ListLeavesFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Type            string  `json:"type"`
	TypeLabel       string  `json:"type_label"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	AttachmentRef   *string `json:"attachment_ref,omitempty"`
	ReplacementDate *string `json:"replacement_date,omitempty"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApproverName    *string `json:"approver_name,omitempty"`
	AdminNotes      *string `json:"admin_notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type MutationResponse struct {
	Message string        `json:"message"`
	Data    LeaveResponse `json:"data"`
}

type QuotaResponse struct {
	Year      int `json:"year"`
	Quota     int `json:"quota"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}
