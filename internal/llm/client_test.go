package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare object", `{"name":"Luna"}`, `{"name":"Luna"}`, true},
		{"wrapped in prose", "Sure! Here is the persona:\n{\"name\":\"Luna\"}\nEnjoy!", `{"name":"Luna"}`, true},
		{"code fence", "```json\n{\"name\":\"Luna\"}\n```", `{"name":"Luna"}`, true},
		{"nested objects", `before {"a":{"b":{"c":1}}} after`, `{"a":{"b":{"c":1}}}`, true},
		{"braces inside strings", `{"prompt":"use { and } freely","x":1}`, `{"prompt":"use { and } freely","x":1}`, true},
		{"escaped quotes", `{"prompt":"say \"hi\" {"}`, `{"prompt":"say \"hi\" {"}`, true},
		{"no object", "I could not produce a persona, sorry.", "", false},
		{"unbalanced", `{"name":"Luna"`, "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSON(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseProfile(t *testing.T) {
	text := "Here you go:\n" +
		`{"name":"Luna","description":"A friendly tutor","systemPrompt":"You are Luna, a cheerful Spanish tutor.","category":"conversation","capabilities":["grammar","listening"],"avatarUrl":""}`

	p, err := ParseProfile(text)
	require.NoError(t, err)
	assert.Equal(t, "Luna", p.Name)
	assert.Equal(t, "conversation", p.Category)
	assert.Equal(t, []string{"grammar", "listening"}, p.Capabilities)
}

func TestParseProfileNoJSON(t *testing.T) {
	_, err := ParseProfile("nothing useful here")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestGeneratePersona(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "a pirate who teaches French")

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"content": `The persona: {"name":"Capitaine","description":"Arr","systemPrompt":"You teach French as a pirate captain at sea.","category":"fun","capabilities":["speaking"]}`,
				}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "test-model")
	p, err := c.GeneratePersona(context.Background(), "a pirate who teaches French")
	require.NoError(t, err)
	assert.Equal(t, "Capitaine", p.Name)
	assert.Equal(t, []string{"speaking"}, p.Capabilities)
}

func TestGeneratePersonaNoJSONInReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "I cannot do that."}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "test-model")
	_, err := c.GeneratePersona(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestGeneratePersonaEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "test-model")
	_, err := c.GeneratePersona(context.Background(), "anything")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSON)
}

func TestGeneratePersonaDisabled(t *testing.T) {
	c := NewClient("", "", "test-model")
	_, err := c.GeneratePersona(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrDisabled)
}
