package claim

import "time"

// Claim represents an expense claim tracked through the approval lifecycle
type Claim struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Amount         float64   `json:"amount"`
	Status         Status    `json:"status"`
	AttachmentPath string    `json:"attachment_path,omitempty"`
	OwnerName      string    `json:"owner_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TransitionLog is one immutable entry in a claim's audit timeline.
// Rows are only ever inserted, in the same transaction as the status change.
type TransitionLog struct {
	ID           int64     `json:"id"`
	ClaimID      int64     `json:"claim_id"`
	UserID       int64     `json:"user_id"`
	BeforeStatus Status    `json:"before_status"`
	AfterStatus  Status    `json:"after_status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// User is an acting identity supplied by the auth layer
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor is the (id, role) tuple every workflow call is made on behalf of
type Actor struct {
	ID   int64
	Role Role
}

// Stats holds per-status claim counts scoped to the requesting actor
type Stats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Submitted int `json:"submitted"`
	Reviewed  int `json:"reviewed"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}
