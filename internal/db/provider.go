package db

// Provider identifies the upstream AI vendor behind a model or API key.
// The set is closed; anything not listed here must go through
// ProviderCustom with an explicit endpoint.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderMistral   Provider = "mistral"
	ProviderCohere    Provider = "cohere"
	ProviderCustom    Provider = "custom"
)

// Providers returns all known providers in display order.
func Providers() []Provider {
	return []Provider{
		ProviderOpenAI,
		ProviderGemini,
		ProviderAnthropic,
		ProviderMistral,
		ProviderCohere,
		ProviderCustom,
	}
}

// ParseProvider maps a wire value to a Provider. The bool is false for
// values outside the closed set.
func ParseProvider(s string) (Provider, bool) {
	switch Provider(s) {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic,
		ProviderMistral, ProviderCohere, ProviderCustom:
		return Provider(s), true
	}
	return "", false
}

// Label returns the human-readable vendor name. The switch is exhaustive
// over the closed set; Valid() guards every value before it gets here.
func (p Provider) Label() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGemini:
		return "Google Gemini"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderMistral:
		return "Mistral AI"
	case ProviderCohere:
		return "Cohere"
	case ProviderCustom:
		return "Custom endpoint"
	}
	return string(p)
}

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	_, ok := ParseProvider(string(p))
	return ok
}
