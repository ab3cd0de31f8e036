package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact query triage states.
const (
	QueryStatusNew      = "new"
	QueryStatusRead     = "read"
	QueryStatusResolved = "resolved"
)

// ContactQuery is a message submitted through the contact form.
type ContactQuery struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidQueryStatus reports whether s is a known triage state.
func ValidQueryStatus(s string) bool {
	return s == QueryStatusNew || s == QueryStatusRead || s == QueryStatusResolved
}
