// Package i18n loads the embedded message catalogs and resolves the
// language of a request.
//
// Catalogs live in locales/<locale>/<namespace>.yaml. Keys starting with
// "core." belong to the core namespace, and a key may be defined only once
// per locale. Messages are fmt-style formats rendered through
// golang.org/x/text/message; a key missing from a locale falls back to the
// default locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale must be present in every bundle.
	BaseLocale = "en-US"

	// LangParam selects a language through the query string.
	LangParam = "lang"
	// LangCookieName stores a language preference.
	LangCookieName = "lang"
)

//go:embed locales/*/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages.
type Bundle struct {
	defaultTag language.Tag
	tags       []language.Tag
	matcher    language.Matcher
	builder    *catalog.Builder
	messages   map[language.Tag]map[string]string
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded(defaultLocale string) (*Bundle, error) {
	return LoadFromFS(embeddedLocales, defaultLocale)
}

// LoadFromFS loads catalogs from fsys. defaultLocale falls back to
// BaseLocale when empty.
func LoadFromFS(fsys fs.FS, defaultLocale string) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	byLocale := map[string]map[string]string{}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := addFile(byLocale, p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := byLocale[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if strings.TrimSpace(defaultLocale) == "" {
		defaultLocale = BaseLocale
	}
	if _, ok := byLocale[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %s is not defined in catalogs", defaultLocale)
	}

	return newBundle(byLocale, defaultLocale)
}

func addFile(byLocale map[string]map[string]string, p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	messages, ok := byLocale[locale]
	if !ok {
		messages = map[string]string{}
		byLocale[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if strings.HasPrefix(key, "core.") && namespace != "core" {
			return fmt.Errorf("catalog %s: key %q must be defined in core namespace", p, key)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		messages[key] = value
	}
	return nil
}

func newBundle(byLocale map[string]map[string]string, defaultLocale string) (*Bundle, error) {
	defaultTag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	b := &Bundle{
		defaultTag: defaultTag,
		tags:       []language.Tag{defaultTag},
		builder:    catalog.NewBuilder(catalog.Fallback(defaultTag)),
		messages:   map[language.Tag]map[string]string{},
	}

	locales := make([]string, 0, len(byLocale))
	for locale := range byLocale {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		if tag != defaultTag {
			b.tags = append(b.tags, tag)
		}
		b.messages[tag] = byLocale[locale]
		for key, msg := range byLocale[locale] {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	// The first tag is the matcher's default.
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Tags returns the supported tags, default first.
func (b *Bundle) Tags() []language.Tag {
	out := make([]language.Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

// Default returns the default tag.
func (b *Bundle) Default() language.Tag {
	return b.defaultTag
}

// Match picks the closest supported tag for the given preferences.
func (b *Bundle) Match(prefs ...language.Tag) language.Tag {
	if len(prefs) == 0 {
		return b.defaultTag
	}
	_, idx, conf := b.matcher.Match(prefs...)
	if conf == language.No {
		return b.defaultTag
	}
	return b.tags[idx]
}

// ResolveTag determines the language of r from the lang query parameter,
// the lang cookie and Accept-Language, in that order.
func (b *Bundle) ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return b.defaultTag
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			return b.Match(tag)
		}
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, err := language.Parse(c.Value); err == nil {
			return b.Match(tag)
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return b.Match(tags...)
		}
	}
	return b.defaultTag
}

// Localizer renders messages for one tag.
type Localizer struct {
	bundle   *Bundle
	tag      language.Tag
	printer  *message.Printer
	fallback *message.Printer
}

// Localizer returns a Localizer for tag, which should come from Match or
// ResolveTag.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		bundle:   b,
		tag:      tag,
		printer:  message.NewPrinter(tag, message.Catalog(b.builder)),
		fallback: message.NewPrinter(b.defaultTag, message.Catalog(b.builder)),
	}
}

// Tag returns the localizer's language.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T formats the message for key. Keys unknown in every locale render as
// the key itself so missing copy is visible.
func (l *Localizer) T(key string, args ...any) string {
	if _, ok := l.bundle.messages[l.tag][key]; ok {
		return l.printer.Sprintf(key, args...)
	}
	if _, ok := l.bundle.messages[l.bundle.defaultTag][key]; ok {
		return l.fallback.Sprintf(key, args...)
	}
	return key
}
