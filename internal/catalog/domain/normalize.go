package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// WhitespacePolicy decides what happens to whitespace inside a normalized field.
type WhitespacePolicy string

const (
	// CollapseWhitespace turns every run of whitespace into a single space.
	CollapseWhitespace WhitespacePolicy = "collapse"
	// StripWhitespace removes whitespace entirely, so "Sun Pharma" matches "sunpharma".
	StripWhitespace WhitespacePolicy = "strip"
)

// ParseWhitespacePolicy validates a configured policy name. Empty means collapse.
func ParseWhitespacePolicy(s string) (WhitespacePolicy, error) {
	switch WhitespacePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CollapseWhitespace:
		return CollapseWhitespace, nil
	case StripWhitespace:
		return StripWhitespace, nil
	}
	return "", fmt.Errorf("unknown whitespace policy %q", s)
}

// Normalizer produces the search projection of free text. One Normalizer is used
// for both catalog fields and query terms so matching stays symmetric.
type Normalizer struct {
	Policy WhitespacePolicy
}

func NewNormalizer(policy WhitespacePolicy) Normalizer {
	if policy == "" {
		policy = CollapseWhitespace
	}
	return Normalizer{Policy: policy}
}

func (n Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	lowered := cases.Lower(language.Und).String(norm.NFKC.String(text))
	fields := strings.Fields(lowered)
	if n.Policy == StripWhitespace {
		return strings.Join(fields, "")
	}
	return strings.Join(fields, " ")
}

// NormalizeText uses the default collapse policy.
func NormalizeText(text string) string {
	return NewNormalizer(CollapseWhitespace).Normalize(text)
}
