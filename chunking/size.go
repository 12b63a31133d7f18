package chunking

import "strings"

// SplitOversized slides a window of limits.MaxWords words over text,
// advancing by MaxWords-Overlap each step. Text at or under MaxWords is
// returned whole. A trailing window under limits.MinWords is dropped, not
// merged backward: the last few words of an oversized block can be lost.
// Callers needing full coverage must account for that.
func SplitOversized(text string, limits Limits) []string {
	spans := splitOversized(span{text: text, end: len(text)}, limits)
	return spanTexts(spans)
}

// MergeSmall greedily concatenates consecutive chunks left to right,
// flushing a run as soon as it reaches limits.MinWords and never letting
// it grow past limits.MaxWords. A final run below the minimum is dropped.
// A run still below the minimum whose next chunk would push it past the
// maximum is emitted as-is: of the three possible outcomes (emit short,
// drop content, overfill) only emitting keeps both the content and the
// cap. The merge is deterministic, not an optimal bin-packing.
func MergeSmall(chunks []string, limits Limits) []string {
	spans := make([]span, 0, len(chunks))
	for _, c := range chunks {
		spans = append(spans, span{text: c, end: len(c)})
	}
	return spanTexts(mergeSmall(spans, limits))
}

func spanTexts(spans []span) []string {
	if len(spans) == 0 {
		return nil
	}
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.text
	}
	return out
}

func splitOversized(s span, limits Limits) []span {
	words := fieldsWithOffsets(s.text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= limits.MaxWords {
		return []span{trimToWords(s, words[0], words[len(words)-1])}
	}

	stride := limits.MaxWords - limits.Overlap
	var out []span
	for start := 0; start < len(words); start += stride {
		end := start + limits.MaxWords
		if end > len(words) {
			end = len(words)
		}
		if end-start >= limits.MinWords {
			out = append(out, trimToWords(s, words[start], words[end-1]))
		}
		if end == len(words) {
			break
		}
	}
	return out
}

// trimToWords narrows a span to the byte range covering first through
// last, keeping the original inter-word spacing.
func trimToWords(s span, first, last wordSpan) span {
	return span{
		text:  s.text[first.start:last.end],
		start: s.start + first.start,
		end:   s.start + last.end,
	}
}

func mergeSmall(spans []span, limits Limits) []span {
	var out []span
	var run []span
	runWords := 0

	flush := func() {
		if len(run) == 0 {
			return
		}
		out = append(out, joinSpans(run))
		run = nil
		runWords = 0
	}

	for _, s := range spans {
		w := countWords(s.text)
		if w == 0 {
			continue
		}
		if runWords > 0 && runWords+w > limits.MaxWords {
			// Emits the run even below the minimum; dropping it would
			// lose mid-stream content, growing it would break the cap.
			flush()
		}
		run = append(run, s)
		runWords += w
		if runWords >= limits.MinWords {
			flush()
		}
	}
	// A trailing run below the minimum is dropped by policy, except when
	// it is all the input produced: a short input still yields its one
	// sub-minimum chunk.
	if len(out) == 0 {
		flush()
	}
	return out
}

func joinSpans(parts []span) span {
	if len(parts) == 1 {
		return parts[0]
	}
	texts := make([]string, len(parts))
	for i, p := range parts {
		texts[i] = p.text
	}
	return span{
		text:  strings.Join(texts, "\n\n"),
		start: parts[0].start,
		end:   parts[len(parts)-1].end,
	}
}
