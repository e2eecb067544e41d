package extractor

import (
	"context"
	"fmt"

	"press-lens/prompt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Generate 는 json_object 모드로 호출한다. 스키마는 사용자 프롬프트 안의 텍스트로 전달된다.
// 이미지는 첫 사용자 턴에 data URL 로 붙인다.
func (p *OpenAIProvider) Generate(ctx context.Context, call Call) (*Reply, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(call.Model),
		Messages:            openaiMessages(call),
		Temperature:         openai.Float(float64(call.Temperature)),
		MaxCompletionTokens: openai.Int(int64(call.MaxOutputTokens)),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	return &Reply{
		Text:         resp.Choices[0].Message.Content,
		ModelVersion: resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func openaiMessages(call Call) []openai.ChatCompletionMessageParamUnion {
	msgs := []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(call.System)}
	for i, t := range call.Turns {
		if t.Role == prompt.RoleModel {
			msgs = append(msgs, openai.AssistantMessage(t.Text))
			continue
		}
		if mimeType, encoded, ok := call.inlineImage(i); ok {
			msgs = append(msgs, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(t.Text),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: "data:" + mimeType + ";base64," + encoded,
				}),
			}))
			continue
		}
		msgs = append(msgs, openai.UserMessage(t.Text))
	}
	return msgs
}
