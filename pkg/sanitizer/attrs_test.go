package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskpad/taskpad/pkg/sanitizer"
)

func TestAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    map[string]any
		expected map[string]any
	}{
		{
			name: "drops nil values",
			input: map[string]any{
				"title": "buy milk",
				"notes": nil,
				"count": 3,
			},
			expected: map[string]any{
				"title": "buy milk",
				"count": 3,
			},
		},
		{
			name: "drops typed nil values",
			input: map[string]any{
				"ptr":   (*int)(nil),
				"slice": []string(nil),
				"m":     map[string]int(nil),
				"kept":  true,
			},
			expected: map[string]any{
				"kept": true,
			},
		},
		{
			name: "stringifies maps",
			input: map[string]any{
				"meta": map[string]any{"owner": "u1"},
			},
			expected: map[string]any{
				"meta": `{"owner":"u1"}`,
			},
		},
		{
			name: "stringifies structs",
			input: map[string]any{
				"doc": struct {
					ID string `json:"id"`
				}{ID: "42"},
			},
			expected: map[string]any{
				"doc": `{"id":"42"}`,
			},
		},
		{
			name: "passes slices through unchanged",
			input: map[string]any{
				"items": []string{"a", "b"},
			},
			expected: map[string]any{
				"items": []string{"a", "b"},
			},
		},
		{
			name: "passes primitives through unchanged",
			input: map[string]any{
				"s": "x",
				"i": 7,
				"f": 1.5,
				"b": false,
			},
			expected: map[string]any{
				"s": "x",
				"i": 7,
				"f": 1.5,
				"b": false,
			},
		},
		{
			name: "drops reserved status key",
			input: map[string]any{
				"status": "sneaky",
				"other":  "kept",
			},
			expected: map[string]any{
				"other": "kept",
			},
		},
		{
			name:     "handles nil input",
			input:    nil,
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.Attributes(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAttributesDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := map[string]any{
		"status": "x",
		"meta":   map[string]any{"k": "v"},
		"gone":   nil,
	}
	_ = sanitizer.Attributes(input)

	require.Len(t, input, 3)
	assert.Equal(t, map[string]any{"k": "v"}, input["meta"])
}

func TestAttributesIdempotent(t *testing.T) {
	t.Parallel()

	input := map[string]any{
		"title":  "buy milk",
		"status": "dropped",
		"meta":   map[string]any{"owner": "u1"},
		"nested": struct{ A int }{A: 1},
		"items":  []int{1, 2, 3},
		"none":   nil,
	}

	once := sanitizer.Attributes(input)
	twice := sanitizer.Attributes(once)

	assert.Equal(t, once, twice)
}

func TestStringify(t *testing.T) {
	t.Parallel()

	t.Run("serialises values to JSON", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `{"a":1}`, sanitizer.Stringify(map[string]int{"a": 1}))
		assert.Equal(t, `"text"`, sanitizer.Stringify("text"))
		assert.Equal(t, `[1,2]`, sanitizer.Stringify([]int{1, 2}))
	})

	t.Run("replaces unserialisable values with placeholder", func(t *testing.T) {
		t.Parallel()

		result := sanitizer.Stringify(make(chan int))
		assert.Contains(t, result, "unable to stringify")
	})

	t.Run("never panics on self-referencing values", func(t *testing.T) {
		t.Parallel()

		type node struct {
			Next *node
		}
		n := &node{}
		n.Next = n

		result := sanitizer.Stringify(n)
		assert.Contains(t, result, "unable to stringify")
	})
}
