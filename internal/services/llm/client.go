package llm

import (
	"context"
)

// CompletionClient is a stateless text-completion call. The model argument
// overrides the client's configured default for a single call; pass an empty
// string to use the default. userPrompt may be empty when the system prompt
// carries the whole instruction.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt, model string) (string, error)
}
