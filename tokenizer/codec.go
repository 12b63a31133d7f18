package tokenizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Codec converts between text and integer token ids. Decode applied to
// the output of Encode yields text semantically equivalent to the input;
// only the word codec guarantees an exact whitespace-joined form.
type Codec interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

type bpeCodec struct {
	enc *tiktoken.Tiktoken
}

// newBPECodec builds a model-backed BPE codec. The model name is resolved
// through tiktoken's model table first, then treated as a raw encoding
// name, so both "gpt-4" and "cl100k_base" work. Loading encoding data can
// touch the network on first use, hence the context check up front.
func newBPECodec(ctx context.Context, model string) (*bpeCodec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		var encErr error
		enc, encErr = tiktoken.GetEncoding(model)
		if encErr != nil {
			return nil, fmt.Errorf("tokenizer: load encoding for model %q: %w", model, err)
		}
	}
	return &bpeCodec{enc: enc}, nil
}

func (c *bpeCodec) Encode(text string) []int {
	if c == nil || c.enc == nil {
		return nil
	}
	return c.enc.Encode(text, nil, nil)
}

func (c *bpeCodec) Decode(tokens []int) string {
	if c == nil || c.enc == nil {
		return ""
	}
	return c.enc.Decode(tokens)
}

// wordCodec is the permissive fallback: Encode splits on whitespace and
// returns positional ids into the stored word list, Decode joins the
// referenced words with single spaces. Ids outside the stored list are
// skipped rather than rejected. Each Encode replaces the stored list, so
// a wordCodec belongs to one resolution; the factory never shares an
// instance between callers.
type wordCodec struct {
	mu    sync.Mutex
	words []string
}

func newWordCodec() *wordCodec {
	return &wordCodec{}
}

func (c *wordCodec) Encode(text string) []int {
	fields := strings.Fields(text)
	c.mu.Lock()
	c.words = fields
	c.mu.Unlock()
	ids := make([]int, len(fields))
	for i := range fields {
		ids[i] = i
	}
	return ids
}

func (c *wordCodec) Decode(tokens []int) string {
	c.mu.Lock()
	words := c.words
	c.mu.Unlock()
	parts := make([]string, 0, len(tokens))
	for _, id := range tokens {
		if id < 0 || id >= len(words) {
			continue
		}
		parts = append(parts, words[id])
	}
	return strings.Join(parts, " ")
}
