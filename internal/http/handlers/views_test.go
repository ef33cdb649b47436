package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbpkg "lingoadmin/internal/db"
)

func TestAssistantViewRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := dbpkg.Assistant{
		ID:                7,
		CreatedAt:         created,
		UpdatedAt:         created,
		Name:              "Luna",
		Description:       "Spanish tutor",
		AvatarURL:         "https://example.com/luna.png",
		Model:             "gpt-4o-mini",
		Category:          "conversation",
		IsActive:          true,
		SystemPrompt:      "You are Luna, a cheerful Spanish tutor.",
		Capabilities:      []string{"grammar", "listening"},
		ConversationCount: 12,
		MessageCount:      340,
		TokenCount:        56000,
	}

	v := toAssistantView(a)
	assert.Equal(t, a.IsActive, v.IsActive)
	assert.Equal(t, a.SystemPrompt, v.SystemPrompt)
	assert.Equal(t, []string{"grammar", "listening"}, v.Capabilities)

	// The wire format is camelCase; snake_case must not leak out.
	body, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"isActive":true`)
	assert.Contains(t, string(body), `"systemPrompt"`)
	assert.Contains(t, string(body), `"avatarUrl"`)
	assert.NotContains(t, string(body), "is_active")
	assert.NotContains(t, string(body), "system_prompt")

	// And back: input applied to a model lands in the snake_case columns.
	var in assistantInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"name":"Luna","description":"Spanish tutor","avatarUrl":"x",
		"model":"gpt-4o-mini","category":"conversation","isActive":false,
		"systemPrompt":"You are Luna, a cheerful Spanish tutor.",
		"capabilities":["grammar"]
	}`), &in))

	var m dbpkg.Assistant
	in.apply(&m)
	assert.Equal(t, "Luna", m.Name)
	assert.False(t, m.IsActive)
	assert.Equal(t, []string{"grammar"}, []string(m.Capabilities))
}

func TestAssistantViewCopiesCapabilities(t *testing.T) {
	a := dbpkg.Assistant{Capabilities: []string{"grammar"}}
	v := toAssistantView(a)
	v.Capabilities[0] = "changed"
	assert.Equal(t, "grammar", a.Capabilities[0])
}

func TestAPIKeyViewMasksSecret(t *testing.T) {
	k := dbpkg.APIKey{
		ID:       3,
		Name:     "prod-openai",
		Provider: dbpkg.ProviderOpenAI,
		Key:      "sk-abcdefghijklmnop1234",
		Active:   true,
	}
	v := toAPIKeyView(k)
	assert.Equal(t, "sk-…1234", v.Key)
	assert.NotContains(t, v.Key, "abcdefgh")
	assert.Equal(t, "openai", v.Provider)
	assert.Equal(t, "OpenAI", v.ProviderLabel)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "••••••••", MaskKey(""))
	assert.Equal(t, "••••••••", MaskKey("short"))
	assert.Equal(t, "••••••••", MaskKey("12345678"))
	assert.Equal(t, "sk-…wxyz", MaskKey("sk-aaaaaaaaaaaaaaawxyz"))
}

func TestVideoSettingsViewApply(t *testing.T) {
	in := videoSettingsView{
		MinWatchSeconds:    45,
		MaxDurationSeconds: 300,
		AutoPublish:        true,
		EnforceWatchTime:   false,
	}
	var s dbpkg.VideoSettings
	in.apply(&s)
	assert.Equal(t, 45, s.MinWatchSeconds)
	assert.Equal(t, 300, s.MaxDurationSeconds)
	assert.True(t, s.AutoPublish)
	assert.False(t, s.EnforceWatchTime)
	assert.Equal(t, in, toVideoSettingsView(s))
}
