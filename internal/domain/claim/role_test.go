package claim

import "testing"

func TestRole_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"user", RoleUser, true},
		{"verifier", RoleVerifier, true},
		{"approver", RoleApprover, true},
		{"unknown role", Role("Admin"), false},
		{"empty role", Role(""), false},
		{"case sensitive", Role("user"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.role.IsValid(); got != tt.expected {
				t.Errorf("Role.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRole_CanSet(t *testing.T) {
	allowed := map[Role]map[Status]bool{
		RoleUser:     {StatusSubmitted: true},
		RoleVerifier: {StatusReviewed: true},
		RoleApprover: {StatusApproved: true, StatusRejected: true},
	}

	roles := []Role{RoleUser, RoleVerifier, RoleApprover}
	for _, role := range roles {
		for _, status := range AllStatuses() {
			want := allowed[role][status]
			if got := role.CanSet(status); got != want {
				t.Errorf("Role(%s).CanSet(%s) = %v, want %v", role, status, got, want)
			}
		}
	}
}

func TestRole_CanSet_UnknownRole(t *testing.T) {
	for _, status := range AllStatuses() {
		if Role("Admin").CanSet(status) {
			t.Errorf("unknown role must not be able to set %s", status)
		}
	}
}
