package chunking

import (
	"context"
	"strings"
	"unicode"
)

// WordChunker groups text into fixed-size word windows, optionally
// snapping each window's end back to the nearest preceding sentence
// boundary. Overlap repeats the trailing words of a chunk at the start of
// the next one.
type WordChunker struct {
	ChunkSize        int
	Overlap          int
	RespectSentences bool
}

// wordToken is a run of either whitespace or non-whitespace input. A
// non-whitespace run counts as a word when it contains at least one
// alphanumeric rune; bare punctuation runs do not.
type wordToken struct {
	start int
	end   int
	word  bool
	space bool
}

func (c WordChunker) Chunk(_ context.Context, text string) ([]Chunk, error) {
	if c.ChunkSize <= 0 {
		return nil, &ParameterError{Param: "chunk_size", Value: c.ChunkSize, Reason: "must be positive"}
	}
	if c.Overlap < 0 {
		return nil, &ParameterError{Param: "overlap", Value: c.Overlap, Reason: "cannot be negative"}
	}
	if c.Overlap >= c.ChunkSize {
		return nil, &ParameterError{Param: "overlap", Value: c.Overlap, Reason: "must be smaller than chunk_size"}
	}

	tokens := scanWordTokens(text)
	var chunks []Chunk
	cursor := 0
	for cursor < len(tokens) {
		// Skip leading whitespace so chunks start on content.
		for cursor < len(tokens) && tokens[cursor].space {
			cursor++
		}
		if cursor == len(tokens) {
			break
		}

		boundary, words := c.candidateBoundary(tokens, cursor)
		if c.RespectSentences && boundary < len(tokens) {
			if snapped, ok := c.snapToSentence(text, tokens, cursor, boundary); ok {
				boundary = snapped
			}
		}

		chunks = append(chunks, chunkFromTokens(text, tokens, cursor, boundary))

		if boundary >= len(tokens) {
			break
		}
		next := boundary
		if c.Overlap > 0 {
			next = walkBackWords(tokens, boundary, c.Overlap)
		}
		if next <= cursor {
			// The cursor must advance every iteration; a stall here
			// would loop forever.
			if words <= c.Overlap {
				return nil, &ChunkingError{Strategy: "word", Reason: "cursor failed to advance"}
			}
			next = boundary
		}
		cursor = next
	}
	return chunks, nil
}

// candidateBoundary advances from cursor until ChunkSize words are
// consumed, returning the exclusive token index and the word count
// actually gathered.
func (c WordChunker) candidateBoundary(tokens []wordToken, cursor int) (int, int) {
	words := 0
	i := cursor
	for i < len(tokens) {
		if tokens[i].word {
			words++
		}
		i++
		if words == c.ChunkSize {
			break
		}
	}
	return i, words
}

// snapToSentence searches backward from the candidate boundary for a token
// ending in sentence-terminating punctuation followed by whitespace or end
// of input. The snap is rejected when it would leave the window without
// enough words to make forward progress past the overlap.
func (c WordChunker) snapToSentence(text string, tokens []wordToken, cursor, boundary int) (int, bool) {
	for i := boundary - 1; i > cursor; i-- {
		tok := tokens[i]
		if tok.space {
			continue
		}
		if !endsSentence(text[tok.start:tok.end]) {
			continue
		}
		if i+1 < len(tokens) && !tokens[i+1].space {
			continue
		}
		if wordsBetween(tokens, cursor, i+1) <= c.Overlap {
			return 0, false
		}
		return i + 1, true
	}
	return 0, false
}

func endsSentence(tok string) bool {
	return strings.HasSuffix(tok, ".") ||
		strings.HasSuffix(tok, "!") ||
		strings.HasSuffix(tok, "?")
}

func wordsBetween(tokens []wordToken, from, to int) int {
	words := 0
	for i := from; i < to && i < len(tokens); i++ {
		if tokens[i].word {
			words++
		}
	}
	return words
}

// walkBackWords returns the token index that re-includes count words
// before boundary, landing on the first of them.
func walkBackWords(tokens []wordToken, boundary, count int) int {
	seen := 0
	for i := boundary - 1; i >= 0; i-- {
		if tokens[i].word {
			seen++
			if seen == count {
				return i
			}
		}
	}
	return 0
}

func chunkFromTokens(text string, tokens []wordToken, from, to int) Chunk {
	// Trim whitespace tokens at both ends of the window.
	for from < to && tokens[from].space {
		from++
	}
	for to > from && tokens[to-1].space {
		to--
	}
	start := tokens[from].start
	end := tokens[to-1].end
	return Chunk{Text: text[start:end], StartOffset: start, EndOffset: end}
}

// scanWordTokens splits text into alternating whitespace and
// non-whitespace runs in a single pass, preserving exact spacing.
func scanWordTokens(text string) []wordToken {
	var tokens []wordToken
	start := 0
	inSpace := false
	hasAlnum := false
	flush := func(end int) {
		if end == start {
			return
		}
		tokens = append(tokens, wordToken{
			start: start,
			end:   end,
			word:  !inSpace && hasAlnum,
			space: inSpace,
		})
		start = end
		hasAlnum = false
	}
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
		} else if space != inSpace {
			flush(i)
			inSpace = space
		}
		if !space && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			hasAlnum = true
		}
	}
	flush(len(text))
	return tokens
}
