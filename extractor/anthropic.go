package extractor

import (
	"context"
	"fmt"
	"strings"

	"press-lens/prompt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicProvider struct {
	client *anthropic.Client
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{client: &client}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Generate(ctx context.Context, call Call) (*Reply, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(call.Model),
		MaxTokens:   int64(call.MaxOutputTokens),
		Temperature: anthropic.Float(float64(call.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: call.System},
		},
		Messages: anthropicMessages(call),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	var text strings.Builder
	for _, block := range resp.Content {
		text.WriteString(block.Text)
	}
	return &Reply{
		Text:         text.String(),
		ModelVersion: string(resp.Model),
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

func anthropicMessages(call Call) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(call.Turns))
	for i, t := range call.Turns {
		if t.Role == prompt.RoleModel {
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
			continue
		}
		blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(t.Text)}
		if mimeType, encoded, ok := call.inlineImage(i); ok {
			blocks = append(blocks, anthropic.NewImageBlockBase64(mimeType, encoded))
		}
		msgs = append(msgs, anthropic.NewUserMessage(blocks...))
	}
	return msgs
}
