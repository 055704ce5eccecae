package docchat

import "testing"

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "The shelter opens at 9am.",
			expected: "The shelter opens at 9am.",
		},
		{
			name:     "headers stripped",
			input:    "# Summary\nThe document describes a food bank.",
			expected: "Summary\nThe document describes a food bank.",
		},
		{
			name:     "bold and italic unwrapped",
			input:    "The **main** goal is *outreach*.",
			expected: "The main goal is outreach.",
		},
		{
			name:     "code block removed",
			input:    "Before\n```\ncode here\n```\nAfter",
			expected: "Before\n\nAfter",
		},
		{
			name:     "inline code unwrapped",
			input:    "Call `register()` to sign up.",
			expected: "Call register() to sign up.",
		},
		{
			name:     "blank line runs collapsed",
			input:    "First paragraph.\n\n\n\nSecond paragraph.",
			expected: "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \nanswer\n  ",
			expected: "answer",
		},
		{
			name:     "combined formatting",
			input:    "## Answer\n\nThe **organization** offers `free` meals.",
			expected: "Answer\n\nThe organization offers free meals.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanMarkdown(tc.input); got != tc.expected {
				t.Errorf("cleanMarkdown(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
