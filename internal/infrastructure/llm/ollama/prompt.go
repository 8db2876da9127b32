package ollama

import (
	"fmt"
	"strings"

	"github.com/jkatiyar/ai-enterprise-search/internal/core/domain"
)

// buildAnswerPrompt grounds the model strictly in the retrieved
// context. The refusal phrase matches the engine's no-answer marker so
// an ungrounded generation is detected downstream.
func buildAnswerPrompt(question string, chunks []domain.RetrievedChunk) string {
	var contextBuilder strings.Builder
	for idx, chunk := range chunks {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%d] file=%s page=%d score=%.3f\n%s\n\n",
			idx+1,
			chunk.Filename,
			chunk.Page,
			chunk.Score,
			chunk.Text,
		))
	}

	return fmt.Sprintf(`You are answering strictly using the provided context.
If the answer is not present, say "Information is not available".

CONTEXT:
%s
QUESTION:
%s
`, contextBuilder.String(), question)
}
