package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// stylistStubServer fakes an OpenAI-compatible chat completion endpoint.
// The reply callback runs per request so tests can echo back real item IDs.
func stylistStubServer(t *testing.T, reply func(prompt string) string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Messages)

		prompt := req.Messages[len(req.Messages)-1].Content
		fmt.Fprintf(w, `{"choices":[{"message":{"role":"assistant","content":%q}}]}`, reply(prompt))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSuggestOutfit(t *testing.T) {
	var suggestionJSON string
	srv := stylistStubServer(t, func(string) string { return suggestionJSON })

	ts := setupTestServerWith(t, testServerOptions{
		stylistURL:    srv.URL,
		stylistAPIKey: "test-key",
	})
	token, userID := ts.setupRootUser(t)

	topID := ts.addItem(t, token, "Oxford Shirt", "tops")
	bottomID := ts.addItem(t, token, "Chinos", "bottoms")
	suggestionJSON = fmt.Sprintf(
		`{"name":"Office Classic","occasion":"work","itemIds":[%q,%q],"rationale":"Clean and unfussy."}`,
		topID, bottomID,
	)

	resp := ts.api.Post("/api/v1/outfits/suggest",
		"Authorization: Bearer "+token,
		map[string]any{"occasion": "work"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.OutfitSuggestion](t, resp)
	assert.Equal(t, "Office Classic", envelope.Data.Name)
	assert.Equal(t, "work", envelope.Data.Occasion)
	assert.ElementsMatch(t, []string{topID, bottomID}, envelope.Data.ItemIDs)
	assert.Equal(t, userID, envelope.Data.UserID)
	assert.Nil(t, envelope.Data.Weather)
}

func TestSuggestOutfit_NotConfigured(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Post("/api/v1/outfits/suggest",
		"Authorization: Bearer "+token,
		map[string]any{"occasion": "dinner"},
	)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}

func TestListOutfits(t *testing.T) {
	var suggestionJSON string
	srv := stylistStubServer(t, func(string) string { return suggestionJSON })

	ts := setupTestServerWith(t, testServerOptions{
		stylistURL:    srv.URL,
		stylistAPIKey: "test-key",
	})
	token, _ := ts.setupRootUser(t)

	itemID := ts.addItem(t, token, "Trench Coat", "outerwear")
	suggestionJSON = fmt.Sprintf(
		`{"name":"Rainy Day","occasion":"errands","itemIds":[%q],"rationale":"Keeps you dry."}`,
		itemID,
	)

	resp := ts.api.Post("/api/v1/outfits/suggest",
		"Authorization: Bearer "+token,
		map[string]any{"occasion": "errands"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/outfits", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[OutfitsResponse](t, resp)
	require.Equal(t, 1, envelope.Data.Total)
	assert.Equal(t, "Rainy Day", envelope.Data.Outfits[0].Name)
}
