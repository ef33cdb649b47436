package handlers

import (
	"time"

	dbpkg "lingoadmin/internal/db"
)

// The dashboard UI speaks camelCase while the database schema is
// snake_case. This file is the single explicit two-way mapping between
// the two; handlers never hand GORM models straight to the client.

type assistantView struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	AvatarURL         string    `json:"avatarUrl"`
	Model             string    `json:"model"`
	Category          string    `json:"category"`
	IsActive          bool      `json:"isActive"`
	SystemPrompt      string    `json:"systemPrompt"`
	Capabilities      []string  `json:"capabilities"`
	ConversationCount int64     `json:"conversationCount"`
	MessageCount      int64     `json:"messageCount"`
	TokenCount        int64     `json:"tokenCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toAssistantView(a dbpkg.Assistant) assistantView {
	return assistantView{
		ID:                a.ID,
		Name:              a.Name,
		Description:       a.Description,
		AvatarURL:         a.AvatarURL,
		Model:             a.Model,
		Category:          a.Category,
		IsActive:          a.IsActive,
		SystemPrompt:      a.SystemPrompt,
		Capabilities:      append([]string{}, a.Capabilities...),
		ConversationCount: a.ConversationCount,
		MessageCount:      a.MessageCount,
		TokenCount:        a.TokenCount,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// assistantInput is the writable subset of an assistant accepted from
// the UI. Counters and timestamps are server-owned.
type assistantInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	AvatarURL    string   `json:"avatarUrl"`
	Model        string   `json:"model"`
	Category     string   `json:"category"`
	IsActive     bool     `json:"isActive"`
	SystemPrompt string   `json:"systemPrompt"`
	Capabilities []string `json:"capabilities"`
}

func (in assistantInput) apply(a *dbpkg.Assistant) {
	a.Name = in.Name
	a.Description = in.Description
	a.AvatarURL = in.AvatarURL
	a.Model = in.Model
	a.Category = in.Category
	a.IsActive = in.IsActive
	a.SystemPrompt = in.SystemPrompt
	a.Capabilities = append([]string{}, in.Capabilities...)
}

type apiKeyView struct {
	ID            uint       `json:"id"`
	Name          string     `json:"name"`
	Provider      string     `json:"provider"`
	ProviderLabel string     `json:"providerLabel"`
	Key           string     `json:"key"`
	IsActive      bool       `json:"isActive"`
	IsDefault     bool       `json:"isDefault"`
	UsageCount    int64      `json:"usageCount"`
	UsageLimit    *int64     `json:"usageLimit"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toAPIKeyView(k dbpkg.APIKey) apiKeyView {
	return apiKeyView{
		ID:            k.ID,
		Name:          k.Name,
		Provider:      string(k.Provider),
		ProviderLabel: k.Provider.Label(),
		Key:           MaskKey(k.Key),
		IsActive:      k.Active,
		IsDefault:     k.IsDefault,
		UsageCount:    k.UsageCount,
		UsageLimit:    k.UsageLimit,
		ExpiresAt:     k.ExpiresAt,
		CreatedAt:     k.CreatedAt,
	}
}

type apiKeyInput struct {
	Name       string     `json:"name"`
	Provider   string     `json:"provider"`
	Key        string     `json:"key"`
	IsActive   bool       `json:"isActive"`
	UsageLimit *int64     `json:"usageLimit"`
	ExpiresAt  *time.Time `json:"expiresAt"`
}

type aiModelView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Provider      string    `json:"provider"`
	ProviderLabel string    `json:"providerLabel"`
	Description   string    `json:"description"`
	Capabilities  []string  `json:"capabilities"`
	Enabled       bool      `json:"enabled"`
	ContextLength int       `json:"contextLength"`
	CostPer1K     float64   `json:"costPer1kTokens"`
	Strengths     []string  `json:"strengths"`
	Endpoint      string    `json:"endpoint,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toAIModelView(m dbpkg.AIModel) aiModelView {
	return aiModelView{
		ID:            m.ID,
		Name:          m.Name,
		Provider:      string(m.Provider),
		ProviderLabel: m.Provider.Label(),
		Description:   m.Description,
		Capabilities:  append([]string{}, m.Capabilities...),
		Enabled:       m.Enabled,
		ContextLength: m.ContextLength,
		CostPer1K:     m.CostPer1K,
		Strengths:     append([]string{}, m.Strengths...),
		Endpoint:      m.Endpoint,
		CreatedAt:     m.CreatedAt,
	}
}

type aiModelInput struct {
	Name          string   `json:"name"`
	Provider      string   `json:"provider"`
	Description   string   `json:"description"`
	Capabilities  []string `json:"capabilities"`
	Enabled       bool     `json:"enabled"`
	ContextLength int      `json:"contextLength"`
	CostPer1K     float64  `json:"costPer1kTokens"`
	Strengths     []string `json:"strengths"`
	Endpoint      string   `json:"endpoint"`
}

type videoView struct {
	ID              uint      `json:"id"`
	YouTubeID       string    `json:"youtubeId"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"durationSeconds"`
	Active          bool      `json:"active"`
	Position        int       `json:"position"`
	AddedAt         time.Time `json:"addedAt"`
}

func toVideoView(v dbpkg.Video) videoView {
	return videoView{
		ID:              v.ID,
		YouTubeID:       v.YouTubeID,
		Title:           v.Title,
		DurationSeconds: v.DurationSeconds,
		Active:          v.Active,
		Position:        v.Position,
		AddedAt:         v.AddedAt,
	}
}

type videoSettingsView struct {
	MinWatchSeconds    int  `json:"minWatchSeconds"`
	MaxDurationSeconds int  `json:"maxDurationSeconds"`
	AutoPublish        bool `json:"autoPublish"`
	EnforceWatchTime   bool `json:"enforceWatchTime"`
}

func toVideoSettingsView(s dbpkg.VideoSettings) videoSettingsView {
	return videoSettingsView{
		MinWatchSeconds:    s.MinWatchSeconds,
		MaxDurationSeconds: s.MaxDurationSeconds,
		AutoPublish:        s.AutoPublish,
		EnforceWatchTime:   s.EnforceWatchTime,
	}
}

func (v videoSettingsView) apply(s *dbpkg.VideoSettings) {
	s.MinWatchSeconds = v.MinWatchSeconds
	s.MaxDurationSeconds = v.MaxDurationSeconds
	s.AutoPublish = v.AutoPublish
	s.EnforceWatchTime = v.EnforceWatchTime
}

type notificationView struct {
	ID        uint      `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toNotificationView(n dbpkg.Notification) notificationView {
	return notificationView{
		ID:        n.ID,
		Level:     n.Level,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

type usagePointView struct {
	Date     string  `json:"date"`
	Requests int64   `json:"requests"`
	Tokens   int64   `json:"tokens"`
	Cost     float64 `json:"cost"`
	Sampled  bool    `json:"sampled"`
}

// MaskKey hides a secret credential for display, keeping just enough of
// the value to tell keys apart. Short values are masked entirely.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "••••••••"
	}
	return key[:3] + "…" + key[len(key)-4:]
}
