package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringify_Scalars(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "hello", Stringify("  hello  "))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "false", Stringify(false))
	assert.Equal(t, "42", Stringify(float64(42)))
	assert.Equal(t, "3.5", Stringify(3.5))
}

func TestStringify_Sequence(t *testing.T) {
	t.Run("strings become numbered lines", func(t *testing.T) {
		got := Stringify([]interface{}{"first", "second"})
		assert.Equal(t, "1. first\n\n2. second", got)
	})

	t.Run("mappings use label and text preference", func(t *testing.T) {
		got := Stringify([]interface{}{
			map[string]interface{}{"title": "Rule", "description": "Carry the one"},
		})
		assert.Equal(t, "**Rule**: Carry the one", got)
	})

	t.Run("mapping with label only renders remainder", func(t *testing.T) {
		got := Stringify([]interface{}{
			map[string]interface{}{"title": "Rule", "extra": "detail"},
		})
		assert.Equal(t, "**Rule**: **extra**: detail", got)
	})

	t.Run("mixed sequence never drops elements", func(t *testing.T) {
		got := Stringify([]interface{}{"a", float64(7), true})
		assert.Contains(t, got, "1. a")
		assert.Contains(t, got, "7")
		assert.Contains(t, got, "true")
	})
}

func TestStringify_Mapping(t *testing.T) {
	t.Run("single unwrap key recurses", func(t *testing.T) {
		got := Stringify(map[string]interface{}{"content": "the real text"})
		assert.Equal(t, "the real text", got)
	})

	t.Run("nested unwrap", func(t *testing.T) {
		got := Stringify(map[string]interface{}{
			"response": map[string]interface{}{"text": "inner"},
		})
		assert.Equal(t, "inner", got)
	})

	t.Run("two unwrap keys disable unwrapping", func(t *testing.T) {
		got := Stringify(map[string]interface{}{"content": "a", "text": "b"})
		assert.Contains(t, got, "**content**: a")
		assert.Contains(t, got, "**text**: b")
	})

	t.Run("keys sort deterministically", func(t *testing.T) {
		m := map[string]interface{}{"b": "2", "a": "1", "c": "3"}
		want := Stringify(m)
		for i := 0; i < 20; i++ {
			assert.Equal(t, want, Stringify(m))
		}
		assert.Equal(t, "**a**: 1\n\n**b**: 2\n\n**c**: 3", want)
	})

	t.Run("multiline values render on their own lines", func(t *testing.T) {
		got := Stringify(map[string]interface{}{
			"steps": []interface{}{"one", "two"},
		})
		assert.Equal(t, "**steps**:\n1. one\n\n2. two", got)
	})

	t.Run("empty values are skipped", func(t *testing.T) {
		got := Stringify(map[string]interface{}{"a": "x", "b": ""})
		assert.Equal(t, "**a**: x", got)
	})
}

func TestStringify_DeepNestingIsTotal(t *testing.T) {
	// Arbitrary nesting must neither panic nor lose leaves.
	v := map[string]interface{}{
		"a": []interface{}{
			map[string]interface{}{
				"nested": []interface{}{
					map[string]interface{}{"deep": "leaf"},
				},
			},
		},
		"b": map[string]interface{}{"c": []interface{}{float64(1), float64(2), float64(3)}},
	}
	got := Stringify(v)
	assert.Contains(t, got, "leaf")
	assert.Contains(t, got, "3")
}
