package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

// separators, tried in order: paragraph, line, sentence, word. A hard
// character cut is the final fallback when no separator falls in the window.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", " "}

// Service splits raw document text into overlapping segments, preferring
// paragraph, sentence, and word boundaries over hard character cuts so that
// chunks stay as coherent as the size limit allows.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a new chunker service
func NewService(logger arbor.ILogger) interfaces.Chunker {
	return &Service{logger: logger}
}

// Split returns the ordered chunk sequence for text. Splitting is
// deterministic: the same input and parameters always yield the same chunks.
func (s *Service) Split(text string, size, overlap int) ([]models.Chunk, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap <= 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must satisfy 0 < overlap < size, got overlap=%d size=%d", overlap, size)
	}
	if strings.TrimSpace(text) == "" {
		return nil, interfaces.ErrEmptyInput
	}

	// A document shorter than the chunk size is a single chunk
	if len(text) <= size {
		return []models.Chunk{{Index: 0, Offset: 0, Text: text}}, nil
	}

	var chunks []models.Chunk
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, models.Chunk{
				Index:  len(chunks),
				Offset: start,
				Text:   text[start:],
			})
			break
		}

		cut := findBreak(text, start, end, overlap)
		chunks = append(chunks, models.Chunk{
			Index:  len(chunks),
			Offset: start,
			Text:   text[start:cut],
		})

		next := alignToRuneStart(text, cut-overlap)
		if next <= start {
			next = start + 1
			for next < len(text) && !utf8.RuneStart(text[next]) {
				next++
			}
		}
		start = next
	}

	s.logger.Debug().
		Int("text_length", len(text)).
		Int("chunk_size", size).
		Int("overlap", overlap).
		Int("chunks", len(chunks)).
		Msg("Document split into chunks")

	return chunks, nil
}

// findBreak returns the cut position in (start, end] for the chunk starting
// at start. Separator tiers are tried in order; a break is only accepted if
// it leaves room past the overlap so consecutive chunks make forward
// progress. When no separator qualifies, the cut is a hard one at end,
// backed off to a rune boundary so multi-byte text is never split mid-rune.
func findBreak(text string, start, end, overlap int) int {
	window := text[start:end]
	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		cut := start + idx + len(sep)
		if cut > start+overlap {
			return cut
		}
	}

	hard := alignToRuneStart(text, end)
	if hard <= start+overlap {
		// Backing off would erase forward progress; advance to the next
		// rune boundary instead, slightly exceeding the size
		hard = end
		for hard < len(text) && !utf8.RuneStart(text[hard]) {
			hard++
		}
	}
	return hard
}

// alignToRuneStart backs i off to the nearest rune boundary at or before it
func alignToRuneStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
