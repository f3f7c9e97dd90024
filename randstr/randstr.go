// Package randstr builds random characters and strings from a closed set of
// character classes, dispatched through a lookup table. A Sampler draws from
// the engine it wraps, so string generation shares the owner's seed and
// consumption count.
package randstr

import (
	"strings"
	"unicode"

	"github.com/nathoo/twistrand/engine"
)

// Kind selects a predefined character set.
type Kind int

const (
	Uppercase Kind = iota
	Lowercase
	Numeric
	Alpha
	AlphaNumeric
	Symbols
	All
	Custom
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numericChars   = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	hexChars       = "0123456789ABCDEF"
)

// charsets maps every non-Custom kind to its character set.
var charsets = map[Kind]string{
	Uppercase:    uppercaseChars,
	Lowercase:    lowercaseChars,
	Numeric:      numericChars,
	Alpha:        uppercaseChars + lowercaseChars,
	AlphaNumeric: uppercaseChars + lowercaseChars + numericChars,
	Symbols:      symbolChars,
	All:          uppercaseChars + lowercaseChars + numericChars + symbolChars,
}

// Charset returns the character set for a kind. Custom and unknown kinds
// fall back to All.
func Charset(kind Kind) string {
	if set, ok := charsets[kind]; ok {
		return set
	}
	return charsets[All]
}

// InSet reports whether the rune belongs to the kind's character set.
func InSet(r rune, kind Kind) bool {
	return strings.ContainsRune(Charset(kind), r)
}

// KindFromName maps a case-insensitive name to a Kind, defaulting to All.
func KindFromName(name string) Kind {
	switch strings.ToLower(name) {
	case "uppercase", "upper":
		return Uppercase
	case "lowercase", "lower":
		return Lowercase
	case "numeric", "digits":
		return Numeric
	case "alpha":
		return Alpha
	case "alphanumeric", "alnum":
		return AlphaNumeric
	case "symbols":
		return Symbols
	case "custom":
		return Custom
	default:
		return All
	}
}

// Sampler generates characters and strings from an engine.
type Sampler struct {
	eng *engine.Engine
}

// New creates a sampler drawing from the given engine.
func New(e *engine.Engine) *Sampler {
	return &Sampler{eng: e}
}

// Seed returns the seed of the underlying engine.
func (s *Sampler) Seed() int32 {
	return s.eng.RootSeed()
}

// Char returns one random rune from the kind's character set, or from
// customChars when kind is Custom. An empty set yields a space.
func (s *Sampler) Char(kind Kind, customChars string) rune {
	set := Charset(kind)
	if kind == Custom {
		set = customChars
	}
	runes := []rune(set)
	if len(runes) == 0 {
		return ' '
	}
	return runes[s.eng.RandInt(0, int32(len(runes)-1))]
}

// String returns a random string of the given length from the kind's set.
// Non-positive lengths yield an empty string.
func (s *Sampler) String(length int, kind Kind, customChars string) string {
	if length <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteRune(s.Char(kind, customChars))
	}
	return b.String()
}

// Password builds a random password from the selected character classes.
// With no class selected it falls back to alphanumeric.
func (s *Sampler) Password(length int, upper, lower, digits, symbols bool) string {
	if length <= 0 {
		return ""
	}
	var set strings.Builder
	if upper {
		set.WriteString(uppercaseChars)
	}
	if lower {
		set.WriteString(lowercaseChars)
	}
	if digits {
		set.WriteString(numericChars)
	}
	if symbols {
		set.WriteString(symbolChars)
	}
	chars := set.String()
	if chars == "" {
		chars = Charset(AlphaNumeric)
	}
	return s.String(length, Custom, chars)
}

// Identifier builds a random identifier: a letter followed by alphanumerics.
func (s *Sampler) Identifier(length int, upper bool) string {
	if length <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(length)
	if upper {
		b.WriteRune(s.Char(Uppercase, ""))
		for i := 1; i < length; i++ {
			b.WriteRune(s.Char(Custom, uppercaseChars+numericChars))
		}
		return b.String()
	}
	b.WriteRune(s.Char(Lowercase, ""))
	for i := 1; i < length; i++ {
		b.WriteRune(s.Char(AlphaNumeric, ""))
	}
	return b.String()
}

// HexString builds a random hex string, optionally with a "0x" prefix.
func (s *Sampler) HexString(length int, prefix bool) string {
	var b strings.Builder
	if prefix {
		b.WriteString("0x")
	}
	for i := 0; i < length; i++ {
		b.WriteRune(s.Char(Custom, hexChars))
	}
	return b.String()
}

// Name builds a name-like string: one uppercase letter followed by
// lowercase letters, with a length drawn from [minLen, maxLen].
func (s *Sampler) Name(minLen, maxLen int) string {
	if minLen <= 0 || maxLen < minLen {
		return ""
	}
	length := int(s.eng.RandInt(int32(minLen), int32(maxLen)))
	var b strings.Builder
	b.Grow(length)
	b.WriteRune(s.Char(Uppercase, ""))
	for i := 1; i < length; i++ {
		b.WriteRune(s.Char(Lowercase, ""))
	}
	return b.String()
}

// FromPattern builds a string from a pattern: 'A' uppercase, 'a' lowercase,
// '9' digit, 'X' alphanumeric, '?' any, '*' from customChars; everything
// else is copied literally.
func (s *Sampler) FromPattern(pattern, customChars string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	for _, pc := range pattern {
		switch pc {
		case 'A':
			b.WriteRune(s.Char(Uppercase, ""))
		case 'a':
			b.WriteRune(s.Char(Lowercase, ""))
		case '9':
			b.WriteRune(s.Char(Numeric, ""))
		case 'X':
			b.WriteRune(s.Char(AlphaNumeric, ""))
		case '?':
			b.WriteRune(s.Char(All, ""))
		case '*':
			b.WriteRune(s.Char(Custom, customChars))
		default:
			b.WriteRune(pc)
		}
	}
	return b.String()
}

// Shuffle returns the input with its runes in Fisher–Yates order.
func (s *Sampler) Shuffle(input string) string {
	runes := []rune(input)
	for i := len(runes) - 1; i > 0; i-- {
		j := s.eng.RandInt(0, int32(i))
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Substring returns a random substring with length in [minLen, maxLen].
// maxLen <= 0 means "up to the full string".
func (s *Sampler) Substring(input string, minLen, maxLen int) string {
	runes := []rune(input)
	if len(runes) == 0 || minLen <= 0 {
		return ""
	}
	if maxLen <= 0 || maxLen > len(runes) {
		maxLen = len(runes)
	}
	if minLen > len(runes) {
		minLen = len(runes)
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	length := int(s.eng.RandInt(int32(minLen), int32(maxLen)))
	maxStart := len(runes) - length
	start := 0
	if maxStart > 0 {
		start = int(s.eng.RandInt(0, int32(maxStart)))
	}
	return string(runes[start : start+length])
}

// Capitalize flips each alphabetic rune to upper or lower case, upper with
// the given probability.
func (s *Sampler) Capitalize(input string, probability float64) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsLetter(r) {
			if s.eng.RandBool(probability) {
				r = unicode.ToUpper(r)
			} else {
				r = unicode.ToLower(r)
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
