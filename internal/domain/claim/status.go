package claim

// Status represents a claim's position in the approval lifecycle
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusReviewed  Status = "reviewed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var validStatuses = map[Status]bool{
	StatusDraft:     true,
	StatusSubmitted: true,
	StatusReviewed:  true,
	StatusApproved:  true,
	StatusRejected:  true,
}

// transitions is the full workflow graph: every allowed edge appears here
// and nowhere else. Statuses absent from the map have no outbound edges.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusReviewed},
	StatusReviewed:  {StatusApproved, StatusRejected},
}

// IsValid returns true if the status is a member of the lifecycle enumeration
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal returns true if no further transitions are allowed from the status
func (s Status) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// CanTransitionTo returns true if the edge from s to next is in the workflow graph
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// AllStatuses returns every valid status in lifecycle order
func AllStatuses() []Status {
	return []Status{StatusDraft, StatusSubmitted, StatusReviewed, StatusApproved, StatusRejected}
}
