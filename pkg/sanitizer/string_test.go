package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskpad/taskpad/pkg/sanitizer"
)

func TestTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", sanitizer.Trim("  hello \t\n"))
	assert.Equal(t, "", sanitizer.Trim("   "))
}

func TestRemoveExtraWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs of spaces", "buy    milk", "buy milk"},
		{"collapses mixed whitespace", "buy \t\n milk", "buy milk"},
		{"trims edges", "  buy milk  ", "buy milk"},
		{"handles empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, sanitizer.RemoveExtraWhitespace(tt.input))
		})
	}
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", sanitizer.MaxLength("abcdef", 3))
	assert.Equal(t, "abc", sanitizer.MaxLength("abc", 10))
	assert.Equal(t, "", sanitizer.MaxLength("abc", 0))
	// Truncation counts runes, not bytes.
	assert.Equal(t, "héllo", sanitizer.MaxLength("héllo world", 5))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", sanitizer.SingleLine("a\nb\r\nc"))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(
		sanitizer.Trim,
		sanitizer.RemoveExtraWhitespace,
		sanitizer.SingleLine,
	)
	assert.Equal(t, "buy milk", clean("  buy \n  milk \n"))
}
