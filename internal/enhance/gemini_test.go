package enhance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewGeminiClient("test-key", "gemini-1.5-flash")
	c.baseURL = srv.URL
	return c
}

func geminiReply(text string) []byte {
	out, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]string{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	return out
}

func TestGeminiEnhanceDescription(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(geminiReply("Crystal-clear water, five stages of filtration."))
	})

	text, err := client.Enhance(context.Background(), Request{
		Kind:        KindDescription,
		ProductName: "AquaPure Home",
		Description: "A water filter.",
		Category:    "water",
	})
	require.NoError(t, err)
	assert.Equal(t, "Crystal-clear water, five stages of filtration.", text)
	assert.Equal(t, "/models/gemini-1.5-flash:generateContent", gotPath)

	require.Len(t, gotBody.Contents, 1)
	prompt := gotBody.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "AquaPure Home")
	assert.Contains(t, prompt, "A water filter.")
}

func TestGeminiEnhanceKeywordsPrompt(t *testing.T) {
	var prompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prompt = body.Contents[0].Parts[0].Text
		w.Write(geminiReply("water filter, purifier"))
	})

	_, err := client.Enhance(context.Background(), Request{
		Kind:        KindKeywords,
		ProductName: "AquaPure Home",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "SEO keywords")
}

func TestGeminiEnhanceClientErrorNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "invalid model", "status": "INVALID_ARGUMENT"}}`))
	})

	_, err := client.Enhance(context.Background(), Request{Kind: KindDescription, ProductName: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")
	assert.Equal(t, 1, calls)
}

func TestGeminiEnhanceRetriesServerErrors(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(geminiReply("recovered"))
	})

	text, err := client.Enhance(context.Background(), Request{Kind: KindDescription, ProductName: "X"})
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, 2, calls)
}

func TestGeminiEnhanceRequiresAPIKey(t *testing.T) {
	client := NewGeminiClient("", "gemini-1.5-flash")
	_, err := client.Enhance(context.Background(), Request{Kind: KindDescription, ProductName: "X"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "GEMINI_API_KEY"))
}

func TestGeminiEnhanceEmptyCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})

	_, err := client.Enhance(context.Background(), Request{Kind: KindDescription, ProductName: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}
