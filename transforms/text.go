package transforms

import (
	"fmt"
	"strings"

	"fieldmap/field"
)

// asString rejects non-string input with an error naming the value.
func asString(value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T (%v)", value, value)
	}

	return s, nil
}

// Strip removes leading and trailing whitespace.
func Strip(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return strings.TrimSpace(s), nil
}

// Lower lowercases a string.
func Lower(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return strings.ToLower(s), nil
}

// Upper uppercases a string.
func Upper(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return strings.ToUpper(s), nil
}

// Title uppercases the first letter of every space-separated word.
func Title(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}

	return strings.Join(words, " "), nil
}

// Slug lowercases a string and replaces whitespace runs with hyphens.
func Slug(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return strings.Join(strings.Fields(strings.ToLower(s)), "-"), nil
}

// Replace substitutes every occurrence of old with new.
func Replace(old, new string) field.TransformFunc {
	return func(value any) (any, error) {
		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		return strings.ReplaceAll(s, old, new), nil
	}
}

// Truncate cuts a string down to at most n runes.
func Truncate(n int) field.TransformFunc {
	return func(value any) (any, error) {
		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		runes := []rune(s)
		if len(runes) <= n {
			return s, nil
		}

		return string(runes[:n]), nil
	}
}

// Prefix prepends a fixed string.
func Prefix(prefix string) field.TransformFunc {
	return func(value any) (any, error) {
		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		return prefix + s, nil
	}
}

// Suffix appends a fixed string.
func Suffix(suffix string) field.TransformFunc {
	return func(value any) (any, error) {
		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		return s + suffix, nil
	}
}

// Split breaks a string around a separator into a []any of substrings.
func Split(sep string) field.TransformFunc {
	return func(value any) (any, error) {
		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		parts := strings.Split(s, sep)
		out := make([]any, len(parts))

		for i, p := range parts {
			out[i] = p
		}

		return out, nil
	}
}
