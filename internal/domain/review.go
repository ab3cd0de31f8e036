package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Review is a product review. At most one review exists per
// (product, user) pair, and creation requires a delivered order
// containing the product.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks rating bounds and comment presence.
func (r *Review) Validate(op string) error {
	var err error
	if r.Rating < 1 || r.Rating > 5 {
		err = AddFieldError(err, "rating", "rating must be between 1 and 5")
	}
	if strings.TrimSpace(r.Comment) == "" {
		err = AddFieldError(err, "comment", "comment is required")
	}
	if ve, ok := err.(*ValidationError); ok {
		ve.Op = op
	}
	return err
}
