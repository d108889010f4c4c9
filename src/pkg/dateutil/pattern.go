package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// token is either a run of one pattern letter or a literal.
type token struct {
	letter  byte
	count   int
	literal string
}

var errUnterminatedQuote = errors.New("unterminated quote in date pattern")

// tokenize splits a Unicode date pattern ("MMMM d, yyyy") into tokens.
// Text in single quotes is literal; two single quotes are one quote.
func tokenize(pattern string) ([]token, error) {
	var out []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			end := i + 1
			for ; end < len(pattern); end++ {
				if pattern[end] != '\'' {
					continue
				}
				if end+1 < len(pattern) && pattern[end+1] == '\'' {
					end++
					continue
				}
				break
			}
			if end >= len(pattern) {
				return nil, errUnterminatedQuote
			}
			lit.WriteString(strings.ReplaceAll(pattern[i+1:end], "''", "'"))
			i = end + 1
		case isLetter(c):
			j := i
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			flush()
			out = append(out, token{letter: c, count: j - i})
			i = j
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return out, nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// format renders t with a Unicode date pattern.
func format(t time.Time, pattern string) (string, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, tk := range tokens {
		if tk.letter == 0 {
			b.WriteString(tk.literal)
			continue
		}
		s, err := formatToken(t, tk)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func formatToken(t time.Time, tk token) (string, error) {
	n := tk.count
	switch tk.letter {
	case 'y':
		if n == 2 {
			return pad(t.Year()%100, 2), nil
		}
		return pad(t.Year(), n), nil
	case 'M':
		switch n {
		case 1, 2:
			return pad(int(t.Month()), n), nil
		case 3:
			return t.Month().String()[:3], nil
		case 4:
			return t.Month().String(), nil
		case 5:
			return t.Month().String()[:1], nil
		}
	case 'd':
		if n <= 2 {
			return pad(t.Day(), n), nil
		}
	case 'E':
		switch {
		case n <= 3:
			return t.Weekday().String()[:3], nil
		case n == 4:
			return t.Weekday().String(), nil
		case n == 5:
			return t.Weekday().String()[:1], nil
		}
	case 'a':
		if t.Hour() < 12 {
			return "AM", nil
		}
		return "PM", nil
	case 'h':
		if n <= 2 {
			h := t.Hour() % 12
			if h == 0 {
				h = 12
			}
			return pad(h, n), nil
		}
	case 'H':
		if n <= 2 {
			return pad(t.Hour(), n), nil
		}
	case 'm':
		if n <= 2 {
			return pad(t.Minute(), n), nil
		}
	case 's':
		if n <= 2 {
			return pad(t.Second(), n), nil
		}
	case 'S':
		if n <= 9 {
			return pad(t.Nanosecond(), 9)[:n], nil
		}
	case 'X', 'x':
		if n <= 3 {
			return formatOffset(t, tk.letter == 'X', n), nil
		}
	}
	return "", fmt.Errorf("unsupported date pattern token %q", strings.Repeat(string(tk.letter), n))
}

func formatOffset(t time.Time, zulu bool, n int) string {
	_, off := t.Zone()
	if off == 0 && zulu {
		return "Z"
	}
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	hh, mm := pad(off/3600, 2), pad(off%3600/60, 2)
	switch n {
	case 1:
		if mm == "00" {
			return sign + hh
		}
		return sign + hh + mm
	case 2:
		return sign + hh + mm
	default:
		return sign + hh + ":" + mm
	}
}

// layout translates a Unicode date pattern into a time.Parse layout.
// Literal letters and digits are rejected because time.Parse would read
// them as layout elements.
func layout(pattern string) (string, error) {
	tokens, err := tokenize(pattern)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, tk := range tokens {
		if tk.letter == 0 {
			if strings.ContainsAny(tk.literal, "0123456789_JMPpZ") {
				return "", fmt.Errorf("unsupported literal %q in date pattern", tk.literal)
			}
			b.WriteString(tk.literal)
			continue
		}
		s, ok := layoutToken(tk)
		if !ok {
			return "", fmt.Errorf("unsupported date pattern token %q", strings.Repeat(string(tk.letter), tk.count))
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

var layoutTokens = map[token]string{
	{letter: 'y', count: 4}: "2006",
	{letter: 'y', count: 2}: "06",
	{letter: 'M', count: 1}: "1",
	{letter: 'M', count: 2}: "01",
	{letter: 'M', count: 3}: "Jan",
	{letter: 'M', count: 4}: "January",
	{letter: 'd', count: 1}: "2",
	{letter: 'd', count: 2}: "02",
	{letter: 'E', count: 1}: "Mon",
	{letter: 'E', count: 2}: "Mon",
	{letter: 'E', count: 3}: "Mon",
	{letter: 'E', count: 4}: "Monday",
	{letter: 'a', count: 1}: "PM",
	{letter: 'h', count: 1}: "3",
	{letter: 'h', count: 2}: "03",
	{letter: 'H', count: 1}: "15",
	{letter: 'H', count: 2}: "15",
	{letter: 'm', count: 1}: "4",
	{letter: 'm', count: 2}: "04",
	{letter: 's', count: 1}: "5",
	{letter: 's', count: 2}: "05",
	{letter: 'X', count: 1}: "Z07",
	{letter: 'X', count: 2}: "Z0700",
	{letter: 'X', count: 3}: "Z07:00",
	{letter: 'x', count: 1}: "-07",
	{letter: 'x', count: 2}: "-0700",
	{letter: 'x', count: 3}: "-07:00",
}

func layoutToken(tk token) (string, bool) {
	s, ok := layoutTokens[token{letter: tk.letter, count: tk.count}]
	return s, ok
}
