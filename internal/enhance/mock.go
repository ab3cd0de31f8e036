package enhance

import "context"

// MockProvider is an in-memory Provider for tests.
type MockProvider struct {
	// EnhanceFunc allows customizing behavior
	EnhanceFunc func(ctx context.Context, req Request) (string, error)

	// Requests records every enhancement request
	Requests []Request
}

// NewMockProvider creates a new mock enhancement provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Enhance records the request and returns canned copy.
func (m *MockProvider) Enhance(ctx context.Context, req Request) (string, error) {
	m.Requests = append(m.Requests, req)

	if m.EnhanceFunc != nil {
		return m.EnhanceFunc(ctx, req)
	}

	if req.Kind == KindKeywords {
		return "water filter, purifier, clean water, home filtration", nil
	}
	return "Enhanced description for " + req.ProductName, nil
}

var _ Provider = (*MockProvider)(nil)
