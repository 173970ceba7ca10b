package sift

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"
)

// ErrUnknownTokenizer is returned by ParseTokenizer for unrecognized names.
var ErrUnknownTokenizer = errors.New("sift: unknown tokenizer")

// Tokenizer turns text into a lazy sequence of tokens.
//
// The engine hashes tokens exactly as they are yielded, so a Tokenizer is
// responsible for its own case folding. Documents and queries always go
// through the same Tokenizer.
type Tokenizer func(text string) iter.Seq[string]

// DefaultTokenizer yields maximal runs of ASCII letters and digits, lower-cased.
// Everything else (punctuation, whitespace, non-ASCII bytes) separates tokens
// and is dropped. It is equivalent to matching [a-z0-9]+ against the
// lower-cased input.
func DefaultTokenizer(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i <= len(text); i++ {
			if i < len(text) && isASCIIAlnum(text[i]) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				if !yield(lowerASCII(text[start:i])) {
					return
				}
				start = -1
			}
		}
	}
}

// WhitespaceTokenizer splits on Unicode whitespace only and lower-cases each
// field. Punctuation stays inside tokens, so "Hello-World" is a single token.
func WhitespaceTokenizer(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, field := range strings.Fields(text) {
			if !yield(strings.ToLower(field)) {
				return
			}
		}
	}
}

// UnicodeTokenizer applies NFKC normalization and lower-casing, then splits
// the text on UAX#29 word boundaries. Segments without a letter or digit
// (spaces, punctuation) are skipped.
func UnicodeTokenizer(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		segments := words.FromString(strings.ToLower(norm.NFKC.String(text)))
		for segments.Next() {
			segment := segments.Value()
			if strings.IndexFunc(segment, isWordRune) < 0 {
				continue
			}
			if !yield(segment) {
				return
			}
		}
	}
}

// ParseTokenizer returns the built-in tokenizer registered under name.
// An empty name selects DefaultTokenizer.
func ParseTokenizer(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default", "regex":
		return DefaultTokenizer, nil
	case "whitespace":
		return WhitespaceTokenizer, nil
	case "unicode":
		return UnicodeTokenizer, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, name)
	}
}

// Collect materializes the tokens of text.
func Collect(tokenize Tokenizer, text string) []string {
	var tokens []string
	for token := range tokenize(text) {
		tokens = append(tokens, token)
	}
	return tokens
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// lowerASCII lower-cases s, returning it unchanged when already lower-case.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			return strings.ToLower(s)
		}
	}
	return s
}
