package tokenizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// ErrCodecUnavailable is returned by GetCodec when the model-backed codec
// cannot be built and the word-codec fallback has been disabled.
var ErrCodecUnavailable = errors.New("tokenizer: no codec available")

// Resolution is the outcome of a codec lookup. Fallback reports that the
// requested model could not be loaded and the word codec was substituted;
// Reason carries the load failure for logging or response metadata.
type Resolution struct {
	Codec    Codec
	Model    string
	Fallback bool
	Reason   string
}

// Factory caches one lookup outcome per requested model name. The empty
// model name resolves to the word codec directly. A Factory is safe for
// concurrent use; construction happens under the lock so each model is
// loaded at most once.
type Factory struct {
	// DisableFallback turns a failed model load into ErrCodecUnavailable
	// instead of substituting the word codec. Off by default.
	DisableFallback bool

	mu        sync.Mutex
	codecs    map[string]cacheEntry
	fallbacks int
}

// cacheEntry remembers a lookup outcome. BPE codecs are stateless and the
// cached instance is handed out as-is; word codecs keep per-encode state,
// so wordFallback entries mint a fresh codec for every resolution instead
// of sharing one across callers.
type cacheEntry struct {
	res          Resolution
	wordFallback bool
}

func NewFactory() *Factory {
	return &Factory{codecs: make(map[string]cacheEntry)}
}

// GetCodec returns the codec resolved for model, performing the model load
// on first use only. The cache key is the requested model string, not a
// resolved alias, so repeated calls with the same name are idempotent.
// Fallback substitution is recorded and logged but is not an error.
func (f *Factory) GetCodec(ctx context.Context, model string) (Resolution, error) {
	if f == nil {
		return Resolution{}, errors.New("tokenizer: factory is not initialized")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.codecs == nil {
		f.codecs = make(map[string]cacheEntry)
	}
	entry, ok := f.codecs[model]
	if !ok {
		built, err := f.buildLocked(ctx, model)
		if err != nil {
			return Resolution{}, err
		}
		f.codecs[model] = built
		entry = built
	}
	if entry.wordFallback {
		res := entry.res
		res.Codec = newWordCodec()
		return res, nil
	}
	return entry.res, nil
}

func (f *Factory) buildLocked(ctx context.Context, model string) (cacheEntry, error) {
	if model == "" {
		return cacheEntry{res: Resolution{}, wordFallback: true}, nil
	}
	codec, err := newBPECodec(ctx, model)
	if err == nil {
		return cacheEntry{res: Resolution{Codec: codec, Model: model}}, nil
	}
	if f.DisableFallback {
		return cacheEntry{}, fmt.Errorf("%w: model %q: %v", ErrCodecUnavailable, model, err)
	}
	f.fallbacks++
	log.Printf("tokenizer: falling back to word codec for model %q: %v", model, err)
	return cacheEntry{
		res: Resolution{
			Model:    model,
			Fallback: true,
			Reason:   err.Error(),
		},
		wordFallback: true,
	}, nil
}

// FallbackCount reports how many model loads have been substituted with
// the word codec since the factory was created.
func (f *Factory) FallbackCount() int {
	if f == nil {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fallbacks
}
