package token

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Package token generates the opaque identifiers and URL slugs used for
// tracked links. Generation sits behind the Generator interface so services
// stay deterministic under test.

const (
	documentIDLength = 12
	slugSuffixLength = 8
	titlePrefixMax   = 30

	// Slug suffixes stay within the slug character set, unlike document ids
	// which use the full nanoid alphabet.
	slugAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generator mints opaque tokens. Collision probability is treated as
// negligible; nothing downstream checks for duplicates.
type Generator interface {
	// DocumentID returns a 12-character opaque document identifier.
	DocumentID() string
	// SlugSuffix returns an 8-character lowercase alphanumeric suffix.
	SlugSuffix() string
}

type nanoidGenerator struct{}

// NewGenerator returns the production nanoid-backed Generator.
func NewGenerator() Generator {
	return nanoidGenerator{}
}

func (nanoidGenerator) DocumentID() string {
	return gonanoid.Must(documentIDLength)
}

func (nanoidGenerator) SlugSuffix() string {
	return gonanoid.MustGenerate(slugAlphabet, slugSuffixLength)
}

// Sanitize normalizes a caller-supplied slug: every character outside
// [a-zA-Z0-9-] becomes '-', then the whole slug is lowercased.
func Sanitize(slug string) string {
	var b strings.Builder
	b.Grow(len(slug))
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// SlugFromTitle derives a slug from a document title: non-alphanumeric runs
// become '-', lowercased, truncated to 30 characters, then joined with the
// random suffix. The suffix guarantees a non-empty slug for empty titles.
func SlugFromTitle(title, suffix string) string {
	prefix := Sanitize(title)
	if len(prefix) > titlePrefixMax {
		prefix = prefix[:titlePrefixMax]
	}
	return prefix + "-" + suffix
}
