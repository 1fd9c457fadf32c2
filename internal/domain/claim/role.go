package claim

// Role identifies what an acting user is allowed to do in the workflow
type Role string

const (
	RoleUser     Role = "User"
	RoleVerifier Role = "Verifier"
	RoleApprover Role = "Approver"
)

var validRoles = map[Role]bool{
	RoleUser:     true,
	RoleVerifier: true,
	RoleApprover: true,
}

// roleCapabilities maps each role to the statuses it may request.
// Kept separate from the transition graph so authorization and workflow
// correctness are testable independently.
var roleCapabilities = map[Role][]Status{
	RoleUser:     {StatusSubmitted},
	RoleVerifier: {StatusReviewed},
	RoleApprover: {StatusApproved, StatusRejected},
}

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanSet returns true if the role is permitted to request the given status
func (r Role) CanSet(status Status) bool {
	for _, allowed := range roleCapabilities[r] {
		if allowed == status {
			return true
		}
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}
