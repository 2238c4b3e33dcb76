package transforms

import (
	"fmt"
	"regexp"
	"strings"

	"fieldmap/field"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://[-\w.]+(?::\d+)?(?:/[^\s]*)?$`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

	nonPhoneChars  = regexp.MustCompile(`[^\d+]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// ValidEmail reports whether a value looks like an email address.
func ValidEmail(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(s))), nil
}

// ValidURL reports whether a value looks like an http(s) URL.
func ValidURL(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return urlPattern.MatchString(strings.TrimSpace(s)), nil
}

// ValidUUID reports whether a value is a canonically formatted UUID.
func ValidUUID(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return uuidPattern.MatchString(strings.ToLower(strings.TrimSpace(s))), nil
}

// ValidPhone reports whether a value looks like an international phone number
// once formatting characters are stripped.
func ValidPhone(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return phonePattern.MatchString(nonPhoneChars.ReplaceAllString(s, "")), nil
}

// MatchesPattern reports whether a value matches the given regular expression.
func MatchesPattern(pattern string) field.TransformFunc {
	re := regexp.MustCompile(pattern)

	return func(value any) (any, error) {
		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		return re.MatchString(s), nil
	}
}

// NormalizeEmail lowercases an email address and drops embedded whitespace.
func NormalizeEmail(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return whitespaceRuns.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), ""), nil
}

// CleanPhone strips everything but digits and a leading plus from a phone
// number.
func CleanPhone(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	cleaned := nonPhoneChars.ReplaceAllString(strings.TrimSpace(s), "")

	// Only a leading plus survives.
	digits := strings.ReplaceAll(cleaned, "+", "")
	if strings.HasPrefix(cleaned, "+") {
		return "+" + digits, nil
	}

	return digits, nil
}

// NormalizeURL lowercases a URL and prefixes https:// when no scheme is
// present.
func NormalizeURL(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	u := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}

	return u, nil
}

// Require fails the pipeline when the predicate rejects the value; the value
// passes through unchanged otherwise.
func Require(pred func(any) bool, message string) field.TransformFunc {
	return func(value any) (any, error) {
		if !pred(value) {
			return nil, fmt.Errorf("%s: %v", message, value)
		}

		return value, nil
	}
}
