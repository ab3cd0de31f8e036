package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product categories carried by the store.
const (
	CategoryWater = "water"
	CategoryAir   = "air"
)

// Product is a purifier model in the catalog.
type Product struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`
	Stock          int32             `json:"stock"`
	Rating         float64           `json:"rating"`
	NumReviews     int32             `json:"numReviews"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	IsActive       bool              `json:"isActive"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// ValidCategory reports whether c is a known product category.
func ValidCategory(c string) bool {
	return c == CategoryWater || c == CategoryAir
}

// Validate checks product fields before create or update.
func (p *Product) Validate(op string) error {
	var err error
	if strings.TrimSpace(p.Name) == "" {
		err = AddFieldError(err, "name", "name is required")
	}
	if strings.TrimSpace(p.Slug) == "" {
		err = AddFieldError(err, "slug", "slug is required")
	}
	if !ValidCategory(p.Category) {
		err = AddFieldError(err, "category", "category must be water or air")
	}
	if p.Price.LessThanOrEqual(decimal.Zero) {
		err = AddFieldError(err, "price", "price must be positive")
	}
	if p.Stock < 0 {
		err = AddFieldError(err, "stock", "stock cannot be negative")
	}
	if ve, ok := err.(*ValidationError); ok {
		ve.Op = op
	}
	return err
}

// Slugify converts a product name into a URL slug.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
