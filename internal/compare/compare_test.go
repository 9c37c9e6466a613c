package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_Reflexive(t *testing.T) {
	inputs := []string{"", "10", "a\nb\nc", "  padded  \n\tx", "trailing\n", "1\r\n2\r\n"}
	for _, mode := range []Mode{ModeStrict, ModePrefix} {
		c := New(mode)
		for _, in := range inputs {
			assert.True(t, c.Matches(in, in), "mode %s input %q", mode, in)
		}
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		strict   bool
		prefix   bool
	}{
		{name: "exact", expected: "10", actual: "10", strict: true, prefix: true},
		{name: "trailing newline from engine", expected: "10", actual: "10\n", strict: true, prefix: true},
		{name: "surrounding whitespace ignored", expected: "a | b", actual: "  a | b\t\n", strict: true, prefix: true},
		{name: "different value", expected: "10", actual: "9\n", strict: false, prefix: false},
		{name: "actual has extra rows", expected: "a\nb", actual: "a\nb\nc\n", strict: false, prefix: true},
		{name: "actual is truncated", expected: "a\nb\nc", actual: "a\n", strict: false, prefix: false},
		{name: "actual is truncated without final newline", expected: "a\nb\nc", actual: "a", strict: false, prefix: true},
		{name: "empty expected, no output", expected: "", actual: "", strict: true, prefix: true},
		{name: "empty expected, rows returned", expected: "", actual: "x\n", strict: false, prefix: false},
		{name: "inner whitespace matters", expected: "a b", actual: "a  b", strict: false, prefix: false},
		{name: "windows line endings", expected: "1\n2", actual: "1\r\n2\r\n", strict: true, prefix: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.strict, New(ModeStrict).Matches(tt.expected, tt.actual), "strict")
			assert.Equal(t, tt.prefix, New(ModePrefix).Matches(tt.expected, tt.actual), "prefix")
		})
	}
}

func TestMatches_DefaultIsStrict(t *testing.T) {
	assert.Equal(t, ModeStrict, New("").Mode())
	assert.False(t, Matches("a", "a\nb"))
	assert.True(t, Matches("a\nb", "a\nb\n"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, m)

	m, err = ParseMode(" Prefix ")
	require.NoError(t, err)
	assert.Equal(t, ModePrefix, m)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)
}

func TestDiff(t *testing.T) {
	assert.Equal(t, "- 10\n+ 9\n", Diff("10", "9\n"))
	assert.Equal(t, "  a\n- b\n  c\n", Diff("a\nb\nc", "a\nc\n"))
	assert.Equal(t, "  a\n+ b\n", Diff("a", "a\nb\n"))
	assert.Equal(t, "  same\n", Diff("same", "  same  \n"))
}

func TestDiff_EmptyExpected(t *testing.T) {
	assert.Equal(t, "+ x\n", Diff("", "x\n"))
	assert.Equal(t, "", Diff("", ""))
}
