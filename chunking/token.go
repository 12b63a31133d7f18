package chunking

import (
	"context"
	"fmt"
	"strings"

	"scriptor_back/tokenizer"
)

// TokenChunker windows the codec-encoded input into fixed token counts
// and decodes each window back to text. Chunks carry no offsets: decode
// is not guaranteed to reproduce the exact original substring.
type TokenChunker struct {
	ChunkSize int
	Overlap   int
	// Model selects the codec; the empty string resolves the basic word
	// codec without a fallback.
	Model   string
	Factory *tokenizer.Factory
}

// Resolve returns the codec resolution for the configured model, so
// callers can observe a fallback substitution before or after chunking.
func (c *TokenChunker) Resolve(ctx context.Context) (tokenizer.Resolution, error) {
	if c.Factory == nil {
		return tokenizer.Resolution{}, &ChunkingError{Strategy: "token", Reason: "codec factory is not configured"}
	}
	res, err := c.Factory.GetCodec(ctx, c.Model)
	if err != nil {
		return tokenizer.Resolution{}, fmt.Errorf("chunking: resolve codec: %w", err)
	}
	return res, nil
}

func (c *TokenChunker) Chunk(ctx context.Context, text string) ([]Chunk, error) {
	if c.ChunkSize <= 0 {
		return nil, &ParameterError{Param: "chunk_size", Value: c.ChunkSize, Reason: "must be positive"}
	}
	if c.Overlap < 0 {
		return nil, &ParameterError{Param: "overlap", Value: c.Overlap, Reason: "cannot be negative"}
	}
	if c.Overlap >= c.ChunkSize {
		return nil, &ParameterError{Param: "overlap", Value: c.Overlap, Reason: "must be smaller than chunk_size"}
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	res, err := c.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	codec := res.Codec

	tokens := codec.Encode(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	stride := c.ChunkSize - c.Overlap
	var chunks []Chunk
	prev := -1
	for start := 0; start < len(tokens); start += stride {
		if start <= prev {
			return nil, &ChunkingError{Strategy: "token", Reason: "window failed to advance"}
		}
		prev = start
		end := start + c.ChunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		decoded := strings.TrimSpace(codec.Decode(tokens[start:end]))
		if decoded != "" {
			chunks = append(chunks, Chunk{Text: decoded})
		}
		if end == len(tokens) {
			break
		}
	}
	return chunks, nil
}
