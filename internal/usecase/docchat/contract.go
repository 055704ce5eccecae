package docchat

import (
	"context"

	"github.com/careatlas/orgconnect/internal/domain"
)

// Extractor pulls plain text out of a PDF document.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Completer answers a prompt via a chat-completion provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (domain.CompletionResult, error)
}

// AnswerCache stores answers keyed by document text and question. Lookups
// never fail: a cache problem is a miss.
type AnswerCache interface {
	Get(ctx context.Context, docText, question string) (string, bool)
	Put(ctx context.Context, docText, question, answer string)
}
