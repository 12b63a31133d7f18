package knowledge

// Strategy names accepted by SegmentRequest.
const (
	StrategyParagraph = "paragraph"
	StrategyWord      = "word"
	StrategyToken     = "token"
)

// SegmentRequest selects one strategy and its parameters for a single
// segmentation call. Nil numeric fields take the service defaults.
type SegmentRequest struct {
	Text     string `json:"text" binding:"required"`
	Strategy string `json:"strategy"`

	// Paragraph and word strategies, bounds in words.
	MinWords *int `json:"min_words,omitempty"`
	MaxWords *int `json:"max_words,omitempty"`

	// Word and token strategies.
	ChunkSize *int `json:"chunk_size,omitempty"`

	// All strategies; words for paragraph/word, tokens for token.
	Overlap *int `json:"overlap,omitempty"`

	// Word strategy only.
	RespectSentences *bool `json:"respect_sentences,omitempty"`

	// Token strategy only; empty selects the basic word codec.
	Model string `json:"model,omitempty"`
}

// Segment is one chunk of the input enriched with service bookkeeping.
type Segment struct {
	ID          string `json:"id"`
	Seq         int    `json:"seq"`
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	WordCount   int    `json:"word_count"`
}

// SegmentResult is the ordered outcome of one segmentation call.
type SegmentResult struct {
	Strategy       string    `json:"strategy"`
	SegmentCount   int       `json:"segment_count"`
	Segments       []Segment `json:"segments"`
	CodecFallback  bool      `json:"codec_fallback,omitempty"`
	FallbackReason string    `json:"fallback_reason,omitempty"`
	Cached         bool      `json:"cached,omitempty"`
}

// StrategyInfo describes one strategy for the listing endpoint.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Offsets     bool   `json:"offsets"`
}
