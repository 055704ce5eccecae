package docchat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/careatlas/orgconnect/internal/domain"
)

// Service answers questions about an uploaded PDF document.
type Service struct {
	extractor Extractor
	completer Completer
	cache     AnswerCache
	logger    *zap.Logger
}

// New creates a document chat service. cache may be nil to disable caching.
func New(extractor Extractor, completer Completer, cache AnswerCache, logger *zap.Logger) *Service {
	return &Service{
		extractor: extractor,
		completer: completer,
		cache:     cache,
		logger:    logger,
	}
}

// Answer extracts the document text, asks the completion provider the given
// question about it, and returns a markdown-free answer.
func (s *Service) Answer(ctx context.Context, pdfData []byte, question string) (string, error) {
	text, err := s.extractor.Extract(pdfData)
	if err != nil {
		return "", fmt.Errorf("%w: extract pdf text: %w", domain.ErrInvalidRequest, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrDocumentEmpty
	}

	if s.cache != nil {
		if answer, ok := s.cache.Get(ctx, text, question); ok {
			return answer, nil
		}
	}

	result, err := s.completer.Complete(ctx, buildPrompt(question, text))
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}

	s.logger.Debug("Completion finished",
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("completion_tokens", result.CompletionTokens))

	answer := cleanMarkdown(result.Text)

	if s.cache != nil {
		s.cache.Put(ctx, text, question, answer)
	}
	return answer, nil
}

func buildPrompt(question, docText string) string {
	var b strings.Builder
	b.WriteString("Based on the following document, please answer this question: ")
	b.WriteString(question)
	b.WriteString("\n\nDocument content:\n")
	b.WriteString(docText)
	b.WriteString("\n\nPlease provide your answer in plain text format without markdown formatting.\n")
	return b.String()
}
