package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseProvider(t *testing.T) {
	for _, p := range Providers() {
		got, ok := ParseProvider(string(p))
		assert.True(t, ok, "provider %s should parse", p)
		assert.Equal(t, p, got)
	}

	_, ok := ParseProvider("skynet")
	assert.False(t, ok)
	_, ok = ParseProvider("")
	assert.False(t, ok)
	_, ok = ParseProvider("OpenAI") // values are lowercase on the wire
	assert.False(t, ok)
}

func TestProviderLabels(t *testing.T) {
	// Every known provider has a distinct, non-empty label.
	seen := map[string]bool{}
	for _, p := range Providers() {
		label := p.Label()
		assert.NotEmpty(t, label)
		assert.False(t, seen[label], "duplicate label %s", label)
		seen[label] = true
	}
	assert.Equal(t, "Anthropic", ProviderAnthropic.Label())
	assert.Equal(t, "Custom endpoint", ProviderCustom.Label())
}

func TestValidCapability(t *testing.T) {
	assert.True(t, ValidCapability(CapabilityText))
	assert.True(t, ValidCapability(CapabilityImage))
	assert.True(t, ValidCapability(CapabilityCode))
	assert.False(t, ValidCapability("audio"))
	assert.False(t, ValidCapability(""))
}
