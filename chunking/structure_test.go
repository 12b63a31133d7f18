package chunking

import "testing"

func TestIsCodeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"four space indent", "    x = 1", true},
		{"tab indent", "\treturn err", true},
		{"backtick fence", "```go", true},
		{"indented fence", "  ```", true},
		{"tilde fence", "~~~", true},
		{"triple double quote", `"""docstring`, true},
		{"triple single quote", "'''", true},
		{"three space indent", "   not code", false},
		{"list item", "- item", false},
		{"plain text", "plain prose line", false},
		{"blank", "", false},
		{"whitespace only", "      ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCodeLine(tt.line); got != tt.want {
				t.Errorf("IsCodeLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsListItem(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"dash", "- item", true},
		{"star", "* item", true},
		{"plus", "+ item", true},
		{"bullet glyph", "• item", true},
		{"ordinal dot", "1. first step", true},
		{"ordinal paren", "12) twelfth step", true},
		{"indented dash", "  - nested", true},
		{"bare dash", "-", true},
		{"dash without space", "-item", false},
		{"year prefix", "2024 was busy", false},
		{"plain text", "regular sentence", false},
		{"blank", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsListItem(tt.line); got != tt.want {
				t.Errorf("IsListItem(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIsTableRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"pipe row", "| a | b |", true},
		{"indented pipe", "  | cell |", true},
		{"dash border", "+---+---+", true},
		{"equals border", "+===+===+", true},
		{"plus list marker", "+ item", false},
		{"plain text", "no table here", false},
		{"blank", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTableRow(tt.line); got != tt.want {
				t.Errorf("IsTableRow(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyLineOrder(t *testing.T) {
	// A tab-indented list line matches both code and list; detector order
	// commits to code.
	if got := classifyLine("\t- item"); got != blockCode {
		t.Errorf("classifyLine(tab list) = %v, want blockCode", got)
	}
	if got := classifyLine("plain text"); got != blockNone {
		t.Errorf("classifyLine(plain) = %v, want blockNone", got)
	}
}
