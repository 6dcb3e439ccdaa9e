package models

import "strings"

// Intent is the classified purpose of a user query, drawn from a closed set.
// Produced fresh per query and never persisted.
type Intent string

const (
	IntentAnswerQuestion  Intent = "answer_question"
	IntentSearchKnowledge Intent = "search_knowledge_base"
	IntentGetQueryCount   Intent = "get_query_count"
	IntentUnknown         Intent = "unknown"
)

// KnownIntents lists every intent the dispatcher can receive, in the order
// they are presented to the classifier model.
var KnownIntents = []Intent{
	IntentAnswerQuestion,
	IntentSearchKnowledge,
	IntentGetQueryCount,
	IntentUnknown,
}

// ParseIntent maps a raw classifier label to an Intent. Any label that is not
// an exact match for a known intent collapses to IntentUnknown, so callers
// can never observe a value outside the closed set.
func ParseIntent(raw string) Intent {
	label := strings.ToLower(strings.TrimSpace(raw))
	switch Intent(label) {
	case IntentAnswerQuestion, IntentSearchKnowledge, IntentGetQueryCount:
		return Intent(label)
	default:
		return IntentUnknown
	}
}
