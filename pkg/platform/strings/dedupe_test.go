package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, nil},
		{"empty slice", []string{}, []string{}},
		{"trims whitespace", []string{"  foo  ", "bar  ", "  baz"}, []string{"foo", "bar", "baz"}},
		{"removes duplicates preserving order", []string{"foo", "bar", "foo", "baz", "bar"}, []string{"foo", "bar", "baz"}},
		{"removes empty strings", []string{"foo", "", "  ", "bar"}, []string{"foo", "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"a:9092"}, SplitList("a:9092"))
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitList(" a:9092 ,b:9092,, a:9092"))
}
