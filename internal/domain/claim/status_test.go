package claim

import "testing"

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"draft", StatusDraft, true},
		{"submitted", StatusSubmitted, true},
		{"reviewed", StatusReviewed, true},
		{"approved", StatusApproved, true},
		{"rejected", StatusRejected, true},
		{"unknown status", Status("pending"), false},
		{"empty status", Status(""), false},
		{"case sensitive", Status("Draft"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("Status.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusDraft, false},
		{StatusSubmitted, false},
		{StatusReviewed, false},
		{StatusApproved, true},
		{StatusRejected, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("Status.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}

	if Status("bogus").IsTerminal() {
		t.Error("unknown status must not report as terminal")
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusDraft, StatusSubmitted}:    true,
		{StatusSubmitted, StatusReviewed}: true,
		{StatusReviewed, StatusApproved}:  true,
		{StatusReviewed, StatusRejected}:  true,
	}

	// Every (current, requested) pair outside the four workflow edges must
	// be rejected, including self-transitions and state skips.
	for _, current := range AllStatuses() {
		for _, requested := range AllStatuses() {
			want := allowed[[2]Status{current, requested}]
			if got := current.CanTransitionTo(requested); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", current, requested, got, want)
			}
		}
	}
}

func TestStatus_String(t *testing.T) {
	if got := StatusDraft.String(); got != "draft" {
		t.Errorf("Status.String() = %v, want %v", got, "draft")
	}
}

func TestAllStatuses(t *testing.T) {
	statuses := AllStatuses()
	if len(statuses) != 5 {
		t.Fatalf("AllStatuses() returned %d statuses, want 5", len(statuses))
	}
	for _, s := range statuses {
		if !s.IsValid() {
			t.Errorf("AllStatuses() contains invalid status %q", s)
		}
	}
}
