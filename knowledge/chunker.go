package knowledge

import (
	"strings"
	"unicode/utf8"
)

// Chunking defaults, sized so a handful of chunks fit a prompt comfortably.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 75
)

// chunkSeparators are tried in order when looking for a natural split point
// near the chunk boundary: markdown headings first, then lines, sentences,
// and finally words.
var chunkSeparators = []string{"\n## ", "\n### ", "\n", ". ", " "}

// SplitContent splits text into chunks of at most size bytes, overlapping
// consecutive chunks by roughly overlap bytes. Splits prefer natural
// boundaries (headings, newlines, sentence ends) close to the size limit and
// never land inside a multi-byte rune.
func SplitContent(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			end = len(text)
		} else {
			end = splitPoint(text, start, end)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(text) {
			break
		}
		// The overlap must never move the window backwards: a split point
		// close behind start+size can leave end-start <= overlap, which
		// would repeat the same window forever. Forward progress wins over
		// overlap in that case.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
		// Step forward off a partial rune left by the overlap.
		for start < len(text) && !utf8.RuneStart(text[start]) {
			start++
		}
	}
	return chunks
}

// splitPoint searches backwards from the hard limit for the best separator.
// It only accepts a boundary in the back half of the window so pathological
// inputs cannot produce tiny chunks.
func splitPoint(text string, start, limit int) int {
	window := text[start:limit]
	floor := len(window) / 2

	for _, sep := range chunkSeparators {
		if idx := strings.LastIndex(window, sep); idx >= floor {
			// Keep sentence/heading terminators with the leading chunk.
			return start + idx + len(sep)
		}
	}

	// Hard cut: back up to a rune boundary.
	for limit > start && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return limit
}
