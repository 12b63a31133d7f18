// Package chunking splits free-form document text into bounded-size
// segments for downstream embedding and indexing. Three strategies are
// provided: structure-aware paragraph chunking, sentence-aware word-count
// chunking, and token-count chunking backed by a pluggable codec. All
// strategies are stateless pure transformations over the input text.
package chunking

import (
	"context"
	"unicode"
)

// Chunk is a bounded span of the original input text. StartOffset and
// EndOffset are byte positions into the input for the paragraph and word
// strategies; the token strategy leaves them zero because codec decoding
// does not guarantee a character-exact inverse of the original substring.
type Chunk struct {
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

// Chunker is implemented by every segmentation strategy. Chunk returns the
// ordered segments of text; empty or whitespace-only input yields an empty
// list, not an error.
type Chunker interface {
	Chunk(ctx context.Context, text string) ([]Chunk, error)
}

// Limits bounds chunk sizes in whitespace-delimited words for the
// paragraph strategy and the size-constraint engine.
type Limits struct {
	MinWords int
	MaxWords int
	Overlap  int
}

func (l Limits) validate() error {
	if l.MinWords <= 0 {
		return &ParameterError{Param: "min_words", Value: l.MinWords, Reason: "must be positive"}
	}
	if l.MaxWords < l.MinWords {
		return &ParameterError{Param: "max_words", Value: l.MaxWords, Reason: "must be at least min_words"}
	}
	if l.Overlap < 0 {
		return &ParameterError{Param: "overlap", Value: l.Overlap, Reason: "cannot be negative"}
	}
	if l.Overlap >= l.MaxWords {
		return &ParameterError{Param: "overlap", Value: l.Overlap, Reason: "must be smaller than max_words"}
	}
	return nil
}

// span is an engine-internal slice of the original input carrying its byte
// range. Merged spans keep the range of their extremes while the text is a
// joined form, so offsets stay positions into the original input even when
// the text has normalized whitespace.
type span struct {
	text  string
	start int
	end   int
}

func (s span) chunk() Chunk {
	return Chunk{Text: s.text, StartOffset: s.start, EndOffset: s.end}
}

type wordSpan struct {
	start int
	end   int
}

// fieldsWithOffsets locates whitespace-delimited words in text, returning
// the byte range of each.
func fieldsWithOffsets(text string) []wordSpan {
	var words []wordSpan
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				words = append(words, wordSpan{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, wordSpan{start: start, end: len(text)})
	}
	return words
}

func countWords(text string) int {
	return len(fieldsWithOffsets(text))
}
