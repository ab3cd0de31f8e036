// Package enhance generates marketing copy for products using an LLM.
package enhance

import (
	"context"
	"fmt"
	"strings"
)

// Kind selects what to generate for a product.
type Kind string

const (
	KindDescription Kind = "description"
	KindKeywords    Kind = "keywords"
)

// ValidKind reports whether k is a supported enhancement kind.
func ValidKind(k Kind) bool {
	return k == KindDescription || k == KindKeywords
}

// Request describes the product to enhance.
type Request struct {
	Kind        Kind
	ProductName string
	Description string
	Category    string
}

// Provider generates enhanced product copy.
type Provider interface {
	Enhance(ctx context.Context, req Request) (string, error)
}

// buildPrompt renders the instruction sent to the model.
func buildPrompt(req Request) string {
	var b strings.Builder

	switch req.Kind {
	case KindKeywords:
		b.WriteString("Generate 8-12 SEO keywords for the following product. ")
		b.WriteString("Return only a comma-separated list, no numbering or commentary.\n\n")
	default:
		b.WriteString("Rewrite the following product description for an online store ")
		b.WriteString("selling water and air purification systems. Keep it factual, ")
		b.WriteString("persuasive, and under 120 words. Return only the description.\n\n")
	}

	fmt.Fprintf(&b, "Product: %s\n", req.ProductName)
	if req.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", req.Category)
	}
	if req.Description != "" {
		fmt.Fprintf(&b, "Current description: %s\n", req.Description)
	}

	return b.String()
}
