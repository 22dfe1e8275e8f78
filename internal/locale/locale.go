// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Language is a UI language ptop ships strings for.
type Language int

const (
	English Language = iota
	Japanese
)

var (
	tags    = []language.Tag{language.English, language.Japanese}
	matcher = language.NewMatcher(tags)
)

// Tag returns the BCP 47 tag of l.
func (l Language) Tag() language.Tag {
	if l == Japanese {
		return language.Japanese
	}
	return language.English
}

func (l Language) String() string {
	if l == Japanese {
		return "ja"
	}
	return "en"
}

// Parse reads a language name ("en", "english", "ja", "jp", "japanese") or
// a locale such as "ja_JP.UTF-8" or "en-GB". Locales are matched against the
// supported languages; an unsupported one is an error.
func Parse(s string) (Language, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "en", "english", "c", "posix":
		return English, nil
	case "ja", "jp", "japanese":
		return Japanese, nil
	case "":
		return English, fmt.Errorf("empty language")
	}

	// POSIX locales carry an encoding and modifier the tag parser rejects.
	if i := strings.IndexAny(v, ".@"); i >= 0 {
		v = v[:i]
	}
	v = strings.ReplaceAll(v, "_", "-")

	tag, err := language.Parse(v)
	if err != nil {
		return English, fmt.Errorf("invalid language %q: %w", s, err)
	}

	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return English, fmt.Errorf("unsupported language %q", s)
	}

	return Language(idx), nil
}

// Resolve picks the UI language from the first usable candidate, typically
// the configured value followed by $LC_ALL and $LANG. English is the fallback.
func Resolve(candidates ...string) Language {
	for _, c := range candidates {
		if l, err := Parse(c); err == nil {
			return l
		}
	}
	return English
}

// T returns the UI string key in language l, formatted with args.
func T(l Language, key string, args ...any) string {
	return message.NewPrinter(l.Tag(), message.Catalog(uiCatalog)).Sprintf(key, args...)
}
