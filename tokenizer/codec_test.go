package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordCodec(t *testing.T) {
	t.Run("ShouldRoundTripWhitespaceJoined", func(t *testing.T) {
		codec := newWordCodec()
		ids := codec.Encode("the  quick\tbrown\nfox")
		require.Equal(t, []int{0, 1, 2, 3}, ids)
		assert.Equal(t, "the quick brown fox", codec.Decode(ids))
	})

	t.Run("ShouldSkipOutOfRangeIds", func(t *testing.T) {
		codec := newWordCodec()
		codec.Encode("alpha beta")
		assert.Equal(t, "alpha beta", codec.Decode([]int{0, 7, 1, -2}))
	})

	t.Run("ShouldDecodeEmptyBeforeEncode", func(t *testing.T) {
		codec := newWordCodec()
		assert.Equal(t, "", codec.Decode([]int{0, 1, 2}))
	})

	t.Run("ShouldReplaceStoredWordsOnEncode", func(t *testing.T) {
		codec := newWordCodec()
		codec.Encode("old words")
		ids := codec.Encode("brand new words")
		assert.Equal(t, "brand new words", codec.Decode(ids))
	})

	t.Run("ShouldEncodeEmptyToNoTokens", func(t *testing.T) {
		codec := newWordCodec()
		assert.Empty(t, codec.Encode("   "))
	})
}
