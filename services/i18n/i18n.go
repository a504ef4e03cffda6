// Package i18n serves the UI strings of the site in every embedded locale.
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed *.json
var fs embed.FS

// translations stores flattened keys: "en" -> "nav.services" -> "Services"
var (
	translations = make(map[string]map[string]string)
	matcher      = language.NewMatcher([]language.Tag{language.English})
	supported    = []string{"en"}
	mutex        sync.RWMutex
	defaultLang  = "en"
)

// Load initializes the translations from the embedded JSON files and
// rebuilds the Accept-Language matcher over the loaded locales.
func Load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	langs := []string{defaultLang}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", result, flat)
		translations[lang] = flat
		if lang != defaultLang {
			langs = append(langs, lang)
		}
		log.Printf("Loaded locale: %s (%d keys)", lang, len(flat))
	}

	// The default language must be the matcher's first tag so it wins
	// when nothing matches.
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	matcher = language.NewMatcher(tags)
	supported = langs

	return nil
}

// flatten recursively flattens a nested map into dot-notation keys.
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		newKey := k
		if prefix != "" {
			newKey = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(newKey, child, result)
		case string:
			result[newKey] = child
		default:
			result[newKey] = fmt.Sprintf("%v", child)
		}
	}
}

// Supported returns the loaded locale codes, default first.
func Supported() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	return slices.Clone(supported)
}

// IsSupported reports whether lang is a loaded locale.
func IsSupported(lang string) bool {
	mutex.RLock()
	defer mutex.RUnlock()
	return slices.Contains(supported, lang)
}

// Match picks the best loaded locale for an Accept-Language header value.
// Unparseable headers and unmatched languages yield the default language.
func Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}

	mutex.RLock()
	defer mutex.RUnlock()
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index >= len(supported) {
		return defaultLang
	}
	return supported[index]
}

// T retrieves a translation for the given key using the language from the context.
// If the key is missing in the target language, it falls back to the default language,
// and then to the key itself.
// Supports simple named variable replacement {name} if args are provided.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate retrieves a translation for a specific language code.
func Translate(lang, key string, args ...map[string]interface{}) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}

	if lang != defaultLang {
		if trans, ok := translations[defaultLang]; ok {
			if val, ok := trans[key]; ok {
				return format(val, args...)
			}
		}
	}

	return key
}

// format replaces {var} placeholders with values from args if present.
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}

	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// GetLocale extracts the locale stored by the locale middleware, defaulting to "en".
func GetLocale(ctx context.Context) string {
	if val := ctx.Value(LocaleContextKey); val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultLang
}

// WithLocale returns a copy of ctx carrying lang.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}
