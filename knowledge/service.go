package knowledge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"scriptor_back/cache"
	"scriptor_back/chunking"
	"scriptor_back/tokenizer"
)

// ErrUnknownStrategy rejects a strategy name outside the supported set.
var ErrUnknownStrategy = errors.New("knowledge: unknown segmentation strategy")

// Defaults hold the per-strategy parameters applied when a request leaves
// them unset.
type Defaults struct {
	MinWords       int
	MaxWords       int
	Overlap        int
	TokenChunkSize int
	TokenOverlap   int
}

// Service dispatches segmentation requests to the chunking strategies and
// owns the codec factory. It keeps no document state; an optional redis
// result cache is the only side channel.
type Service struct {
	factory  *tokenizer.Factory
	defaults Defaults
	cacheTTL time.Duration
	useCache bool
}

func NewService(factory *tokenizer.Factory) *Service {
	if factory == nil {
		factory = tokenizer.NewFactory()
	}
	return &Service{
		factory: factory,
		defaults: Defaults{
			MinWords:       50,
			MaxWords:       400,
			Overlap:        0,
			TokenChunkSize: 512,
			TokenOverlap:   64,
		},
	}
}

// NewServiceFromEnv builds a service with defaults taken from the
// SEGMENT_* environment variables. Setting SEGMENT_CACHE_TTL to a
// positive duration enables the redis result cache when redis is
// reachable.
func NewServiceFromEnv() (*Service, error) {
	service := NewService(tokenizer.NewFactory())

	if v, ok := envInt("SEGMENT_MIN_WORDS"); ok && v > 0 {
		service.defaults.MinWords = v
	}
	if v, ok := envInt("SEGMENT_MAX_WORDS"); ok && v >= service.defaults.MinWords {
		service.defaults.MaxWords = v
	}
	if v, ok := envInt("SEGMENT_OVERLAP"); ok && v >= 0 && v < service.defaults.MaxWords {
		service.defaults.Overlap = v
	}
	if v, ok := envInt("SEGMENT_TOKEN_CHUNK_SIZE"); ok && v > 0 {
		service.defaults.TokenChunkSize = v
	}
	if v, ok := envInt("SEGMENT_TOKEN_OVERLAP"); ok && v >= 0 && v < service.defaults.TokenChunkSize {
		service.defaults.TokenOverlap = v
	}

	if raw := strings.TrimSpace(os.Getenv("SEGMENT_CACHE_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("knowledge: parse SEGMENT_CACHE_TTL: %w", err)
		}
		if ttl > 0 {
			service.cacheTTL = ttl
			service.useCache = cache.Enabled()
			if !service.useCache {
				log.Printf("knowledge: segment cache requested but redis is unavailable, running uncached")
			}
		}
	}

	return service, nil
}

func envInt(key string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// Defaults returns a copy of the service's default parameters.
func (s *Service) Defaults() Defaults {
	if s == nil {
		return Defaults{}
	}
	return s.defaults
}

// Strategies lists the available strategies with their characteristics.
func (s *Service) Strategies() []StrategyInfo {
	return []StrategyInfo{
		{
			Name:        StrategyParagraph,
			Description: "structure-aware paragraph chunking; code, list and table blocks are kept intact",
			Unit:        "words",
			Offsets:     true,
		},
		{
			Name:        StrategyWord,
			Description: "fixed word windows with optional sentence-boundary snapping",
			Unit:        "words",
			Offsets:     true,
		},
		{
			Name:        StrategyToken,
			Description: "fixed token windows through a model-backed codec with word-codec fallback",
			Unit:        "tokens",
			Offsets:     false,
		},
	}
}

// Segment runs one chunking request. Parameter violations surface as
// *chunking.ParameterError, internal scan failures as
// *chunking.ChunkingError; a codec fallback is reported on the result, not
// as an error.
func (s *Service) Segment(ctx context.Context, req SegmentRequest) (*SegmentResult, error) {
	if s == nil {
		return nil, errors.New("knowledge: service is not initialized")
	}
	strategy := strings.TrimSpace(strings.ToLower(req.Strategy))
	if strategy == "" {
		strategy = StrategyParagraph
	}

	key := ""
	if s.useCache {
		key = cacheKey(strategy, req)
		var cached SegmentResult
		ok, err := cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Printf("knowledge: segment cache read failed: %v", err)
		} else if ok {
			cached.Cached = true
			return &cached, nil
		}
	}

	result, err := s.segment(ctx, strategy, req)
	if err != nil {
		return nil, err
	}

	if s.useCache && key != "" {
		if err := cache.SetJSON(ctx, key, result, s.cacheTTL); err != nil {
			log.Printf("knowledge: segment cache write failed: %v", err)
		}
	}
	return result, nil
}

func (s *Service) segment(ctx context.Context, strategy string, req SegmentRequest) (*SegmentResult, error) {
	result := &SegmentResult{Strategy: strategy}

	var chunker chunking.Chunker
	var tokens *chunking.TokenChunker
	switch strategy {
	case StrategyParagraph:
		chunker = chunking.ParagraphChunker{Limits: chunking.Limits{
			MinWords: intOr(req.MinWords, s.defaults.MinWords),
			MaxWords: intOr(req.MaxWords, s.defaults.MaxWords),
			Overlap:  intOr(req.Overlap, s.defaults.Overlap),
		}}
	case StrategyWord:
		chunker = chunking.WordChunker{
			ChunkSize:        intOr(req.ChunkSize, s.defaults.MaxWords),
			Overlap:          intOr(req.Overlap, s.defaults.Overlap),
			RespectSentences: req.RespectSentences == nil || *req.RespectSentences,
		}
	case StrategyToken:
		tokens = &chunking.TokenChunker{
			ChunkSize: intOr(req.ChunkSize, s.defaults.TokenChunkSize),
			Overlap:   intOr(req.Overlap, s.defaults.TokenOverlap),
			Model:     strings.TrimSpace(req.Model),
			Factory:   s.factory,
		}
		chunker = tokens
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, strategy)
	}

	chunks, err := chunker.Chunk(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	if tokens != nil && tokens.Model != "" {
		res, resolveErr := tokens.Resolve(ctx)
		if resolveErr == nil && res.Fallback {
			result.CodecFallback = true
			result.FallbackReason = res.Reason
		}
	}

	result.Segments = make([]Segment, len(chunks))
	for i, c := range chunks {
		result.Segments[i] = Segment{
			ID:          uuid.NewString(),
			Seq:         i + 1,
			Text:        c.Text,
			StartOffset: c.StartOffset,
			EndOffset:   c.EndOffset,
			WordCount:   len(strings.Fields(c.Text)),
		}
	}
	result.SegmentCount = len(result.Segments)
	return result, nil
}

func intOr(value *int, fallback int) int {
	if value != nil {
		return *value
	}
	return fallback
}

func cacheKey(strategy string, req SegmentRequest) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d|%v|%s|",
		strategy,
		intOr(req.MinWords, -1),
		intOr(req.MaxWords, -1),
		intOr(req.ChunkSize, -1),
		intOr(req.Overlap, -1),
		req.RespectSentences == nil || *req.RespectSentences,
		req.Model,
	)
	h.Write([]byte(req.Text))
	return "segment:" + hex.EncodeToString(h.Sum(nil))
}
