// Package messages resolves user-facing texts by key and locale. The app it
// replaces kept these strings in property bundles, so missing keys and locales
// fall back instead of failing.
package messages

import "strings"

// Keys carried over from the replaced app. The defaults are the exact legacy
// literals and must stay byte for byte what the frontend compares against.
const (
	KeyNodeRepeated = "legacy.node.repeated"

	DefaultNodeRepeated = "Nó repetido"
)

const defaultLocale = "pt-BR"

// Bundle maps locale to key to message. Lookups cascade: exact locale, then
// its base language, then the default locale, then the caller's fallback.
type Bundle struct {
	texts map[string]map[string]string
}

func NewBundle() *Bundle {
	return &Bundle{texts: map[string]map[string]string{
		"pt-BR": {
			KeyNodeRepeated: DefaultNodeRepeated,
		},
	}}
}

// Resolve returns the message for key in the given locale, or fallback when
// nothing matches. It never fails.
func (b *Bundle) Resolve(key, locale, fallback string) string {
	for _, candidate := range localeChain(locale) {
		if msg, ok := b.texts[candidate][key]; ok {
			return msg
		}
	}
	return fallback
}

// Add registers a message, overriding any existing entry. Useful for tests
// and for future locale additions.
func (b *Bundle) Add(locale, key, message string) {
	if b.texts[locale] == nil {
		b.texts[locale] = make(map[string]string)
	}
	b.texts[locale][key] = message
}

func localeChain(locale string) []string {
	chain := make([]string, 0, 3)
	if locale != "" {
		chain = append(chain, locale)
		if base, _, found := strings.Cut(locale, "-"); found {
			chain = append(chain, base)
		}
	}
	return append(chain, defaultLocale)
}
