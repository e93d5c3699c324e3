package ingestion

import (
	"fmt"
	"strings"
)

// Splitter cuts document text into fixed-size chunks using a sliding window.
// Consecutive chunks share exactly Overlap characters; the final chunk may be
// shorter than Size. The window is measured in runes, so multibyte UTF-8
// text is never cut mid-character. Splitting is deterministic: identical
// input always yields byte-for-byte identical chunks.
type Splitter struct {
	// Size is the maximum number of characters (runes) per chunk.
	Size int

	// Overlap is the number of characters shared between consecutive chunks.
	// Must be smaller than Size.
	Overlap int
}

// NewSplitter validates the window parameters and returns a Splitter.
func NewSplitter(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("ingestion: chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("ingestion: chunk overlap must not be negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("ingestion: chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Splitter{Size: size, Overlap: overlap}, nil
}

// Split returns the chunk sequence for text. Leading and trailing whitespace
// is trimmed before windowing; empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	step := s.Size - s.Overlap

	for start := 0; start < len(runes); start += step {
		end := start + s.Size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}
