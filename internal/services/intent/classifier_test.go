package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/respondeo/internal/common"
	"github.com/ternarybob/respondeo/internal/interfaces"
	"github.com/ternarybob/respondeo/internal/models"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Generate(ctx context.Context, req *interfaces.GenerateRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeProvider) Close() error                          { return nil }

func newTestClassifier(provider interfaces.LanguageModelProvider) interfaces.IntentClassifier {
	return NewService(provider, common.DefaultConfig(), common.GetLogger())
}

func TestClassify_RecognizedIntents(t *testing.T) {
	tests := []struct {
		response string
		expected models.Intent
	}{
		{"answer_question", models.IntentAnswerQuestion},
		{"search_knowledge_base", models.IntentSearchKnowledge},
		{"get_query_count", models.IntentGetQueryCount},
		{"unknown", models.IntentUnknown},
		{"  Answer_Question  ", models.IntentAnswerQuestion},
		{"GET_QUERY_COUNT\n", models.IntentGetQueryCount},
	}

	for _, tt := range tests {
		classifier := newTestClassifier(&fakeProvider{response: tt.response})
		assert.Equal(t, tt.expected, classifier.Classify(context.Background(), "some query"),
			"response %q", tt.response)
	}
}

func TestClassify_OffEnumResponseCollapsesToUnknown(t *testing.T) {
	for _, response := range []string{"answer", "search", "something else entirely", ""} {
		classifier := newTestClassifier(&fakeProvider{response: response})
		assert.Equal(t, models.IntentUnknown, classifier.Classify(context.Background(), "query"),
			"response %q", response)
	}
}

func TestClassify_ProviderErrorCollapsesToUnknown(t *testing.T) {
	classifier := newTestClassifier(&fakeProvider{err: errors.New("model overloaded")})
	assert.Equal(t, models.IntentUnknown, classifier.Classify(context.Background(), "query"))
}

func TestClassify_EmptyQueryIsUnknown(t *testing.T) {
	classifier := newTestClassifier(&fakeProvider{response: "answer_question"})
	assert.Equal(t, models.IntentUnknown, classifier.Classify(context.Background(), "   "))
}
