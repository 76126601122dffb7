// Package lang names the output languages the prompts and parsers know about.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is an output language for prompts and marker patterns.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

// All lists supported languages; the first entry is the fallback.
var All = []Language{English, Chinese}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Chinese})

// Parse accepts en/english, zh/chinese (any case) or a BCP 47 tag whose base
// language is English or Chinese (en-US, zh-Hans-CN, zh_TW, ...).
func Parse(s string) (Language, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "en", "english":
		return English, nil
	case "zh", "chinese", "中文":
		return Chinese, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(norm, "_", "-"))
	if err != nil {
		return "", fmt.Errorf("unknown language %q: %w", s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "zh":
		return Chinese, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// FromEnv picks a language from LC_ALL, LC_MESSAGES, or LANG (first set wins),
// e.g. "zh_CN.UTF-8" -> Chinese. Anything unmatched falls back to English.
func FromEnv(env []string) Language {
	vals := make(map[string]string, len(env))
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok {
			vals[k] = v
		}
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := vals[key]
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			continue
		}
		_, idx, conf := matcher.Match(tag)
		if conf == language.No {
			return English
		}
		return All[idx]
	}
	return English
}

// String returns the language code.
func (l Language) String() string { return string(l) }
