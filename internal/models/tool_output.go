package models

// ToolOutputKind tags the variant carried by a ToolOutput.
type ToolOutputKind string

const (
	ToolOutputAnswer     ToolOutputKind = "answer"
	ToolOutputSearch     ToolOutputKind = "search"
	ToolOutputQueryCount ToolOutputKind = "query_count"
	ToolOutputError      ToolOutputKind = "error"
)

// ToolOutput is the tagged hand-off contract between the dispatcher and the
// response composer. Exactly the fields for the tagged Kind are populated.
type ToolOutput struct {
	Kind ToolOutputKind `json:"kind"`

	// answer
	Text            string `json:"text,omitempty"`
	ChunksRetrieved int    `json:"chunks_retrieved,omitempty"`

	// search
	Results     []SearchResult `json:"results,omitempty"`
	ResultCount int            `json:"result_count,omitempty"`

	// query_count
	Count int64 `json:"count,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

// AnswerOutput builds the answer variant.
func AnswerOutput(text string, chunksRetrieved int) ToolOutput {
	return ToolOutput{Kind: ToolOutputAnswer, Text: text, ChunksRetrieved: chunksRetrieved}
}

// SearchOutput builds the search variant.
func SearchOutput(results []SearchResult) ToolOutput {
	return ToolOutput{Kind: ToolOutputSearch, Results: results, ResultCount: len(results)}
}

// QueryCountOutput builds the query_count variant.
func QueryCountOutput(count int64) ToolOutput {
	return ToolOutput{Kind: ToolOutputQueryCount, Count: count}
}

// ErrorOutput builds the error variant.
func ErrorOutput(message string) ToolOutput {
	return ToolOutput{Kind: ToolOutputError, Message: message}
}
