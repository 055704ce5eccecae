package docchat

import (
	"context"

	"go.uber.org/zap"

	"github.com/careatlas/orgconnect/internal/domain"
)

type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ []byte) (string, error) {
	return m.text, m.err
}

type mockCompleter struct {
	result domain.CompletionResult
	err    error
	calls  int
}

func (m *mockCompleter) Complete(_ context.Context, _ string) (domain.CompletionResult, error) {
	m.calls++
	if m.err != nil {
		return domain.CompletionResult{}, m.err
	}
	return m.result, nil
}

type mockCache struct {
	answers map[string]string
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{answers: make(map[string]string)}
}

func (m *mockCache) Get(_ context.Context, docText, question string) (string, bool) {
	a, ok := m.answers[docText+"\x00"+question]
	return a, ok
}

func (m *mockCache) Put(_ context.Context, docText, question, answer string) {
	m.puts++
	m.answers[docText+"\x00"+question] = answer
}

func newTestService(extractor Extractor, completer Completer, cache AnswerCache) *Service {
	return New(extractor, completer, cache, zap.NewNop())
}
