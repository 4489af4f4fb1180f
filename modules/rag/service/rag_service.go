package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ridhima028/ai-calendar-assistant/core/errors"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	nlpservice "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/service"
)

const retrievalDepth = 3

// AnswerService answers free-text questions from the knowledge corpus.
type AnswerService interface {
	Answer(ctx context.Context, question string) (string, *errors.AppError)
}

type ragService struct {
	store  *Store
	gemini nlpservice.GeminiClient
}

func NewRAGService(store *Store, gemini nlpservice.GeminiClient) AnswerService {
	return &ragService{
		store:  store,
		gemini: gemini,
	}
}

// Answer retrieves the most relevant documents and asks the model to answer
// strictly from them.
func (s *ragService) Answer(ctx context.Context, question string) (string, *errors.AppError) {
	docs := s.store.Retrieve(question, retrievalDepth)

	var contextText strings.Builder
	for _, doc := range docs {
		contextText.WriteString(doc.Text)
		contextText.WriteString("\n\n")
	}

	logger.Info("RAGService:Answer:Retrieved", "documents", len(docs), "question_len", len(question))

	prompt := fmt.Sprintf(`Answer the question using ONLY the context below.

<context>
%s
</context>

Question: %s`, contextText.String(), question)

	answer, appErr := s.gemini.GenerateContent(ctx, prompt)
	if appErr != nil {
		return "", appErr
	}

	return strings.TrimSpace(answer), nil
}
