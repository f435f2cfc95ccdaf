package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/llm"
)

// EntryParser turns free-form work logs into raw candidate entries.
type EntryParser interface {
	Parse(ctx context.Context, text string, pc ParseContext) (*Payload, error)
}

type entryParser struct {
	client llm.LLMClient
}

// NewEntryParser creates an EntryParser backed by an LLM client.
func NewEntryParser(client llm.LLMClient) EntryParser {
	return &entryParser{client: client}
}

func (p *entryParser) Parse(ctx context.Context, text string, pc ParseContext) (*Payload, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to parse")
	}

	resp, err := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskParse,
		SystemPrompt: parseSystemPrompt,
		UserPrompt:   buildParseUserPrompt(text, pc),
	})
	if err != nil {
		return nil, fmt.Errorf("llm parse failed: %w", err)
	}

	payload, err := decodePayload(resp.Text)
	if err != nil {
		return nil, fmt.Errorf("decoding parse output: %w", err)
	}
	return payload, nil
}
