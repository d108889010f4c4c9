package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Hello", Capitalize("hello"))
	assert.Equal(t, "World", Capitalize("WORLD"))
	assert.Equal(t, "Javascript", Capitalize("javaScript"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "A", Capitalize("a"))
	assert.Equal(t, "123abc", Capitalize("123abc"))
	assert.Equal(t, "!hello", Capitalize("!hello"))
	assert.Equal(t, "Élan", Capitalize("éLAN"))
}

func TestReverse(t *testing.T) {
	assert.Equal(t, "olleh", Reverse("hello"))
	assert.Equal(t, "", Reverse(""))
	assert.Equal(t, "radar", Reverse("radar"))
	assert.Equal(t, "dlrow olleh", Reverse("hello world"))
	assert.Equal(t, "#c@b!a", Reverse("a!b@c#"))
	assert.Equal(t, "åb", Reverse("bå"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello...", Truncate("hello world", 5))
	assert.Equal(t, "testing tr...", Truncate("testing truncation", 10))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "", Truncate("", 5))
	assert.Equal(t, "hello***", TruncateWith("hello world", 5, "***"))
	assert.Equal(t, "test!", TruncateWith("testing", 4, "!"))
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"hello world":         "helloWorld",
		"foo bar baz":         "fooBarBaz",
		"hello-world":         "helloWorld",
		"foo_bar_baz":         "fooBarBaz",
		"hello_world-foo bar": "helloWorldFooBar",
		"helloWorld":          "helloWorld",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CamelCase(in), "CamelCase(%q)", in)
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"hello world":         "hello_world",
		"foo-bar-baz":         "foo_bar_baz",
		"helloWorld":          "hello_world",
		"fooBarBaz":           "foo_bar_baz",
		"hello_world-foo bar": "hello_world_foo_bar",
		"hello_world":         "hello_world",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SnakeCase(in), "SnakeCase(%q)", in)
	}
}

func TestCountOccurrences(t *testing.T) {
	assert.Equal(t, 3, CountOccurrences("hello world", "l"))
	assert.Equal(t, 3, CountOccurrences("banana", "a"))
	assert.Equal(t, 2, CountOccurrences("hello hello", "hello"))
	assert.Equal(t, 0, CountOccurrences("hello world", "z"))
	assert.Equal(t, 0, CountOccurrences("", "a"))
	assert.Equal(t, 0, CountOccurrences("hello", ""))
	assert.Equal(t, 0, CountOccurrences("", ""))
	assert.Equal(t, 3, CountOccurrences("abababa", "aba"))
}
