package domain

import "time"

// ContentKeyAbout is the key for the about-page content block.
const ContentKeyAbout = "about"

// Content is a keyed block of editable site copy. Sections are free-form
// named text blocks so the admin can edit copy without a deploy.
type Content struct {
	Key       string            `json:"key"`
	Sections  map[string]string `json:"sections"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// DefaultContent returns the seed content for a key, or nil when the key
// has no defaults. The about block is seeded on first read.
func DefaultContent(key string) *Content {
	if key != ContentKeyAbout {
		return nil
	}
	return &Content{
		Key: ContentKeyAbout,
		Sections: map[string]string{
			"hero":    "Clean water and clean air for every home.",
			"mission": "PureLife builds purification systems that remove what does not belong in the water you drink and the air you breathe.",
			"story":   "Founded by a team of filtration engineers, PureLife ships direct to consumers so advanced purification stays affordable.",
		},
	}
}
