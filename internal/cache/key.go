package cache

import (
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// KeyFunc builds a cache key from the call arguments. An empty key disables caching for the call.
type KeyFunc[A any] func(A) string

// Template compiles a text/template pattern over the argument value into a KeyFunc.
// The pattern is executed once against the zero argument so that unknown fields fail here
// instead of on the first call.
func Template[A any](pattern string) (KeyFunc[A], error) {
	tpl, err := template.New("cache-key").Option("missingkey=error").Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("parse key template: %w", err)
	}

	var zero A
	if err := tpl.Execute(&strings.Builder{}, zero); err != nil {
		return nil, fmt.Errorf("key template %q does not fit %T: %w", pattern, zero, err)
	}

	return func(args A) string {
		var b strings.Builder
		if err := tpl.Execute(&b, args); err != nil {
			return ""
		}
		return b.String()
	}, nil
}

// MustTemplate is like Template but panics on error.
func MustTemplate[A any](pattern string) KeyFunc[A] {
	fn, err := Template[A](pattern)
	if err != nil {
		panic(err)
	}
	return fn
}

// Static returns a KeyFunc that ignores the arguments.
func Static[A any](key string) KeyFunc[A] {
	return func(A) string { return key }
}

func normalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
}
