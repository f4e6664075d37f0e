package domain

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Identity is the verified caller of a request. It is passed explicitly into
// every service call.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}
