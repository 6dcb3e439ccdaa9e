package dispatch

import (
	"fmt"
	"strings"

	"github.com/ternarybob/respondeo/internal/models"
)

const previewLimit = 150

// ComposeResponse renders a ToolOutput as user-facing text. It is pure and
// total: every output kind, including malformed ones, yields a string.
func ComposeResponse(output models.ToolOutput) string {
	switch output.Kind {
	case models.ToolOutputAnswer:
		return output.Text
	case models.ToolOutputSearch:
		return composeSearch(output)
	case models.ToolOutputQueryCount:
		return fmt.Sprintf("%d queries have been answered so far.", output.Count)
	case models.ToolOutputError:
		return output.Message
	default:
		return "The request produced an unrecognized result."
	}
}

func composeSearch(output models.ToolOutput) string {
	if len(output.Results) == 0 {
		return "No matching documents were found in the knowledge base."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d matching passage(s):\n", len(output.Results))
	for i, result := range output.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, preview(result.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}

// preview truncates content to previewLimit characters, guarding empty text.
// The limit counts runes, not bytes, so multi-byte content is never cut
// mid-character.
func preview(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return "(empty passage)"
	}
	runes := []rune(content)
	if len(runes) <= previewLimit {
		return content
	}
	return string(runes[:previewLimit]) + "..."
}
