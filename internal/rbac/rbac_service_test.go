package rbac_test

import (
	"testing"

	"github.com/jagatraya2508/absensi/internal/domain"
	"github.com/jagatraya2508/absensi/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestRBACService_Enforce(t *testing.T) {
	svc, err := rbac.NewService(rbac.DefaultPolicy())
	assert.NoError(t, err)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can check in", domain.RoleEmployee, "attendance", "create", true},
		{"employee cannot delete attendance", domain.RoleEmployee, "attendance", "delete", false},
		{"employee cannot approve leave", domain.RoleEmployee, "leave", "approve", false},
		{"admin approves leave", domain.RoleAdmin, "leave", "approve", true},
		{"admin inherits employee self service", domain.RoleAdmin, "face", "self", true},
		{"admin reads reports", domain.RoleAdmin, "report", "read", true},
		{"unknown role denied", "guest", "attendance", "read", false},
		{"empty role denied", "", "attendance", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_CustomPolicy(t *testing.T) {
	svc, err := rbac.NewService(rbac.Policy{
		Permissions: []rbac.Permission{{Role: "auditor", Resource: "report", Action: "read"}},
	})
	assert.NoError(t, err)

	allowed, err := svc.Enforce(domain.EnforceRequest{Role: "auditor", Resource: "report", Action: "read"})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{Role: "auditor", Resource: "leave", Action: "approve"})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
