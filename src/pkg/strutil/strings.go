// Package strutil provides string casing and inspection helpers.
package strutil

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonWord      = regexp.MustCompile(`[^\w\s]`)
	separators   = regexp.MustCompile(`[\s_-]+`)
	upperLetter  = regexp.MustCompile(`([A-Z])`)
	alreadyCamel = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

// Casers are stateful, so each call gets its own.
func lower(s string) string { return cases.Lower(language.Und).String(s) }

func upper(s string) string { return cases.Upper(language.Und).String(s) }

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper(s[:size]) + lower(s[size:])
}

// Reverse reverses s rune by rune.
func Reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// Truncate shortens s to max runes and appends "..." when it cut anything.
func Truncate(s string, max int) string {
	return TruncateWith(s, max, "...")
}

// TruncateWith is Truncate with a custom ellipsis.
func TruncateWith(s string, max int, ellipsis string) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + ellipsis
}

// CamelCase joins the words of s as lowerCamelCase. Input that already
// looks like camelCase is returned unchanged.
func CamelCase(s string) string {
	if s == "" {
		return ""
	}
	if alreadyCamel.MatchString(s) {
		return s
	}

	words := separators.Split(nonWord.ReplaceAllString(s, " "), -1)
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(lower(w))
			continue
		}
		b.WriteString(Capitalize(w))
	}
	return b.String()
}

// SnakeCase lower-cases the words of s and joins them with underscores.
// Every upper-case ASCII letter starts a new word.
func SnakeCase(s string) string {
	if s == "" {
		return ""
	}
	spaced := upperLetter.ReplaceAllString(nonWord.ReplaceAllString(s, " "), " $1")

	var words []string
	for _, w := range separators.Split(spaced, -1) {
		if w != "" {
			words = append(words, lower(w))
		}
	}
	return strings.Join(words, "_")
}

// CountOccurrences counts matches of sub in s, overlapping ones included.
func CountOccurrences(s, sub string) int {
	if s == "" || sub == "" {
		return 0
	}
	count := 0
	for i := 0; ; {
		j := strings.Index(s[i:], sub)
		if j == -1 {
			return count
		}
		count++
		i += j + 1
	}
}
