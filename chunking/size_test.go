package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = "w" + strings.Repeat("x", i%3) + string(rune('a'+i%26))
	}
	return words
}

func TestSplitOversized(t *testing.T) {
	t.Run("ShouldReturnShortTextWhole", func(t *testing.T) {
		got := SplitOversized("just a few words", Limits{MinWords: 2, MaxWords: 10})
		require.Equal(t, []string{"just a few words"}, got)
	})

	t.Run("ShouldKeepTextBelowMinimumWhenItFits", func(t *testing.T) {
		got := SplitOversized("two words", Limits{MinWords: 5, MaxWords: 10})
		require.Equal(t, []string{"two words"}, got)
	})

	t.Run("ShouldWindowWithOverlap", func(t *testing.T) {
		words := numberedWords(10)
		text := strings.Join(words, " ")
		got := SplitOversized(text, Limits{MinWords: 2, MaxWords: 4, Overlap: 1})
		require.Len(t, got, 3)
		assert.Equal(t, strings.Join(words[0:4], " "), got[0])
		assert.Equal(t, strings.Join(words[3:7], " "), got[1])
		assert.Equal(t, strings.Join(words[6:10], " "), got[2])
	})

	t.Run("ShouldDropShortTail", func(t *testing.T) {
		// 9 words, windows of 4: the final 1-word window is below the
		// minimum and is dropped. This loss is the documented policy.
		words := numberedWords(9)
		got := SplitOversized(strings.Join(words, " "), Limits{MinWords: 3, MaxWords: 4})
		require.Len(t, got, 2)
		assert.Equal(t, strings.Join(words[0:4], " "), got[0])
		assert.Equal(t, strings.Join(words[4:8], " "), got[1])
		for _, chunk := range got {
			assert.NotContains(t, chunk, words[8])
		}
	})

	t.Run("ShouldBeIdempotentOnEmittedChunks", func(t *testing.T) {
		limits := Limits{MinWords: 3, MaxWords: 5, Overlap: 1}
		first := SplitOversized(strings.Join(numberedWords(17), " "), limits)
		require.NotEmpty(t, first)
		for _, chunk := range first {
			again := SplitOversized(chunk, limits)
			require.Equal(t, []string{chunk}, again)
		}
	})

	t.Run("ShouldReturnNilForEmptyText", func(t *testing.T) {
		assert.Nil(t, SplitOversized("   \n  ", Limits{MinWords: 1, MaxWords: 4}))
	})
}

func TestMergeSmall(t *testing.T) {
	t.Run("ShouldMergeUntilMinimumReached", func(t *testing.T) {
		got := MergeSmall([]string{"a b", "c d", "e f g h"}, Limits{MinWords: 4, MaxWords: 10})
		require.Len(t, got, 2)
		assert.Equal(t, "a b\n\nc d", got[0])
		assert.Equal(t, "e f g h", got[1])
	})

	t.Run("ShouldFlushRunsAtMinimumNotMaximum", func(t *testing.T) {
		// Two runs that would fit under the maximum together still stay
		// separate because each reaches the minimum on its own.
		got := MergeSmall([]string{"one two three", "four five six"}, Limits{MinWords: 3, MaxWords: 50})
		require.Equal(t, []string{"one two three", "four five six"}, got)
	})

	t.Run("ShouldEmitRunBlockedByMaximum", func(t *testing.T) {
		// The middle run is below the minimum but cannot absorb its
		// neighbor without passing the maximum; it is emitted short
		// rather than dropped or overfilled.
		got := MergeSmall([]string{
			"a b c d",
			"one two three four five six seven eight nine",
		}, Limits{MinWords: 5, MaxWords: 10})
		require.Len(t, got, 2)
		assert.Equal(t, "a b c d", got[0])
		assert.Equal(t, "one two three four five six seven eight nine", got[1])
	})

	t.Run("ShouldDropTrailingRunBelowMinimum", func(t *testing.T) {
		got := MergeSmall([]string{"a b c d e", "x y"}, Limits{MinWords: 4, MaxWords: 10})
		require.Equal(t, []string{"a b c d e"}, got)
	})

	t.Run("ShouldKeepShortInputAsSingleChunk", func(t *testing.T) {
		got := MergeSmall([]string{"a b"}, Limits{MinWords: 3, MaxWords: 10})
		require.Equal(t, []string{"a b"}, got)
	})

	t.Run("ShouldSkipEmptyChunks", func(t *testing.T) {
		got := MergeSmall([]string{"", "a b c", "   "}, Limits{MinWords: 2, MaxWords: 10})
		require.Equal(t, []string{"a b c"}, got)
	})

	t.Run("ShouldBeDeterministic", func(t *testing.T) {
		in := []string{"a b", "c", "d e f", "g h", "i"}
		limits := Limits{MinWords: 3, MaxWords: 6}
		first := MergeSmall(in, limits)
		second := MergeSmall(in, limits)
		assert.Equal(t, first, second)
	})
}
