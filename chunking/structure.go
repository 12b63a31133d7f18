package chunking

import (
	"regexp"
	"strings"
)

var ordinalMarker = regexp.MustCompile(`^\d+[.)]\s`)

// IsCodeLine reports whether a line reads as code: a fence or triple-quote
// marker, or indentation by a tab or at least four spaces. Blank lines are
// never code.
func IsCodeLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ") {
		return true
	}
	lead := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(lead, "```") ||
		strings.HasPrefix(lead, "~~~") ||
		strings.HasPrefix(lead, `"""`) ||
		strings.HasPrefix(lead, "'''")
}

// IsListItem reports whether a line starts with a bullet or ordinal
// marker.
func IsListItem(line string) bool {
	lead := strings.TrimLeft(line, " \t")
	if lead == "" {
		return false
	}
	for _, marker := range []string{"- ", "* ", "+ ", "• "} {
		if strings.HasPrefix(lead, marker) {
			return true
		}
	}
	// A bare marker with no content still opens a list item.
	if lead == "-" || lead == "*" || lead == "+" || lead == "•" {
		return true
	}
	return ordinalMarker.MatchString(lead)
}

// IsTableRow reports whether a line starts with a pipe cell or an ASCII
// table border.
func IsTableRow(line string) bool {
	lead := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(lead, "|") ||
		strings.HasPrefix(lead, "+-") ||
		strings.HasPrefix(lead, "+=")
}

type blockKind int

const (
	blockNone blockKind = iota
	blockCode
	blockList
	blockTable
)

// classifyLine resolves a line that may match several predicates by fixed
// detector order: code, then list, then table. A special-block run opened
// by the first matching line continues only while later lines keep the
// same classification.
func classifyLine(line string) blockKind {
	switch {
	case IsCodeLine(line):
		return blockCode
	case IsListItem(line):
		return blockList
	case IsTableRow(line):
		return blockTable
	default:
		return blockNone
	}
}

func matchesKind(line string, kind blockKind) bool {
	switch kind {
	case blockCode:
		return IsCodeLine(line)
	case blockList:
		return IsListItem(line)
	case blockTable:
		return IsTableRow(line)
	default:
		return classifyLine(line) == blockNone
	}
}
