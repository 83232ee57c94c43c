package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple name", input: "Science", expected: "science"},
		{name: "spaces become hyphens", input: "Web Development", expected: "web-development"},
		{name: "punctuation collapses", input: "C++ & Go!", expected: "c-go"},
		{name: "leading and trailing junk stripped", input: "  --Hello World--  ", expected: "hello-world"},
		{name: "consecutive separators collapse", input: "a  -  b", expected: "a-b"},
		{name: "digits preserved", input: "Top 10 Lists", expected: "top-10-lists"},
		{name: "already a slug", input: "already-a-slug", expected: "already-a-slug"},
		{name: "unicode letters preserved", input: "Café Culture", expected: "café-culture"},
		{name: "empty input", input: "", expected: ""},
		{name: "only punctuation", input: "!!!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}
