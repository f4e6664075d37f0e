package rbac

import "github.com/jagatraya2508/absensi/internal/domain"

type Permission struct {
	Role     string
	Resource string
	Action   string
}

type Inherit struct {
	Role   string
	Parent string
}

type Policy struct {
	Permissions []Permission
	Inherits    []Inherit
}

// DefaultPolicy grants employees the self-service surface. Admin inherits it
// and adds the management actions.
func DefaultPolicy() Policy {
	employee := func(resource, action string) Permission {
		return Permission{Role: domain.RoleEmployee, Resource: resource, Action: action}
	}
	admin := func(resource, action string) Permission {
		return Permission{Role: domain.RoleAdmin, Resource: resource, Action: action}
	}

	return Policy{
		Permissions: []Permission{
			employee("attendance", "create"),
			employee("attendance", "read"),
			employee("leave", "create"),
			employee("leave", "read"),
			employee("leave", "delete"),
			employee("face", "self"),
			employee("offday", "self"),
			employee("location", "read"),

			admin("attendance", "delete"),
			admin("leave", "approve"),
			admin("leave", "read_all"),
			admin("face", "manage"),
			admin("offday", "manage"),
			admin("location", "manage"),
			admin("report", "read"),
		},
		Inherits: []Inherit{
			{Role: domain.RoleAdmin, Parent: domain.RoleEmployee},
		},
	}
}
