package chunking

import (
	"context"
	"strings"
)

// ParagraphChunker is the primary strategy. It walks the input line by
// line, keeping plain paragraphs and special blocks (code, list, table)
// apart: a special block is consumed as one unit and never split across a
// paragraph boundary. Every flushed block passes through SplitOversized,
// and the full ordered result through a final MergeSmall pass.
type ParagraphChunker struct {
	Limits Limits
}

func (c ParagraphChunker) Chunk(_ context.Context, text string) ([]Chunk, error) {
	if err := c.Limits.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	lines := splitLines(text)

	var flushed []span
	flushBlock := func(s span) {
		flushed = append(flushed, splitOversized(s, c.Limits)...)
	}

	paraStart := -1 // line index of the open paragraph, -1 when none
	flushParagraph := func(endLine int) {
		if paraStart < 0 {
			return
		}
		flushBlock(lineRange(text, lines, paraStart, endLine))
		paraStart = -1
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i].text(text)
		if strings.TrimSpace(line) == "" {
			flushParagraph(i - 1)
			continue
		}
		kind := classifyLine(line)
		if kind == blockNone {
			if paraStart < 0 {
				paraStart = i
			}
			continue
		}

		// Special block: close the open paragraph, then consume the
		// maximal run of lines keeping this classification.
		flushParagraph(i - 1)
		blockEnd := i
		for blockEnd+1 < len(lines) {
			next := lines[blockEnd+1].text(text)
			if strings.TrimSpace(next) == "" || !matchesKind(next, kind) {
				break
			}
			blockEnd++
		}
		flushBlock(lineRange(text, lines, i, blockEnd))
		i = blockEnd
	}
	flushParagraph(len(lines) - 1)

	merged := mergeSmall(flushed, c.Limits)
	chunks := make([]Chunk, len(merged))
	for i, s := range merged {
		chunks[i] = s.chunk()
	}
	return chunks, nil
}

type lineSpan struct {
	start int
	end   int // exclusive, excludes the newline
}

func (l lineSpan) text(src string) string {
	return src[l.start:l.end]
}

func splitLines(text string) []lineSpan {
	var lines []lineSpan
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			end := i
			if end > start && text[end-1] == '\r' {
				end--
			}
			lines = append(lines, lineSpan{start: start, end: end})
			start = i + 1
		}
	}
	lines = append(lines, lineSpan{start: start, end: len(text)})
	return lines
}

// lineRange builds a span covering lines first through last, preserving
// the original text between them.
func lineRange(src string, lines []lineSpan, first, last int) span {
	return span{
		text:  src[lines[first].start:lines[last].end],
		start: lines[first].start,
		end:   lines[last].end,
	}
}
