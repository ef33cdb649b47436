// Package llm talks to the external chat-completions endpoint used for
// AI-assisted persona creation. One request, one response; retries are
// the operator's job (the dashboard just re-submits).
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ErrDisabled is returned when no completion endpoint is configured.
var ErrDisabled = errors.New("llm: persona generation is not configured")

// ErrNoJSON is returned when the completion text does not contain a
// recognizable JSON object.
var ErrNoJSON = errors.New("llm: no JSON object found in completion")

// PersonaProfile is the generated persona draft decoded from the
// completion. All fields are suggestions the operator can still edit.
type PersonaProfile struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	SystemPrompt string   `json:"systemPrompt"`
	Category     string   `json:"category"`
	Capabilities []string `json:"capabilities"`
	AvatarURL    string   `json:"avatarUrl"`
}

// Client calls a chat-completions style endpoint.
type Client struct {
	http     *resty.Client
	endpoint string
	model    string
}

// NewClient builds a client for the given endpoint. An empty endpoint
// yields a client whose GeneratePersona always returns ErrDisabled.
func NewClient(endpoint, apiKey, model string) *Client {
	c := resty.New().
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return &Client{http: c, endpoint: endpoint, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are helping an administrator of a language-learning platform design an AI tutor persona. Respond with a single JSON object with the keys "name", "description", "systemPrompt", "category", "capabilities" (array of short tags) and "avatarUrl" (may be empty). No other text is required.`

// GeneratePersona asks the endpoint to draft a persona from the
// operator's free-form description and decodes the embedded JSON object
// from the reply.
func (c *Client) GeneratePersona(ctx context.Context, description string) (*PersonaProfile, error) {
	if c.endpoint == "" {
		return nil, ErrDisabled
	}

	reqID := uuid.NewString()
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Design a persona for: " + strings.TrimSpace(description)},
		},
	}

	var out chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", reqID).
		SetBody(body).
		SetResult(&out).
		Post(c.endpoint)
	if err != nil {
		log.Printf("persona generation request %s failed: %v", reqID, err)
		return nil, err
	}
	if resp.IsError() {
		log.Printf("persona generation request %s: endpoint returned %d", reqID, resp.StatusCode())
		return nil, fmt.Errorf("llm: endpoint returned status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return nil, ErrNoJSON
	}

	return ParseProfile(out.Choices[0].Message.Content)
}

// ParseProfile extracts the first balanced JSON object from text and
// decodes it into a PersonaProfile.
func ParseProfile(text string) (*PersonaProfile, error) {
	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, ErrNoJSON
	}
	var p PersonaProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrNoJSON
	}
	return &p, nil
}

// ExtractJSON returns the first balanced {...} region of s. Models often
// wrap the object in prose or a code fence, so this is a brace-matching
// scan (string-literal aware), not a strict parse of the whole text.
func ExtractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
