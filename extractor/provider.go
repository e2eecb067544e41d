package extractor

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"press-lens/models"
	"press-lens/prompt"
)

// Call 은 provider 에 보내는 호출 1회 분량의 요청이다.
type Call struct {
	Model           string
	System          string
	Turns           []prompt.Turn
	Schema          models.FieldSpec
	Image           *prompt.Attachment
	Temperature     float32
	MaxOutputTokens int32
}

type Usage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Reply 는 provider 의 원문 응답이다.
type Reply struct {
	Text         string
	ModelVersion string
	Usage        Usage
}

// Provider 는 구조화 생성을 지원하는 LLM 백엔드다.
type Provider interface {
	Name() string
	Generate(ctx context.Context, call Call) (*Reply, error)
}

// NewProvider 는 설정의 provider 이름에 맞는 구현을 만든다.
func NewProvider(ctx context.Context, name, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key for llm provider %q is not set", name)
	}
	switch strings.ToLower(name) {
	case "google", "gemini":
		return NewGeminiProvider(ctx, apiKey)
	case "openai":
		return NewOpenAIProvider(apiKey), nil
	case "anthropic":
		return NewAnthropicProvider(apiKey), nil
	}
	return nil, fmt.Errorf("unsupported LLM provider: %s", name)
}

// transcript 는 로그용 프롬프트 문자열이다.
func (c Call) transcript() string {
	var b strings.Builder
	b.WriteString(c.System)
	for _, t := range c.Turns {
		fmt.Fprintf(&b, "\n\n[%s]\n%s", t.Role, t.Text)
	}
	return b.String()
}

// inlineImage 는 OpenAI/Anthropic 에 보낼 첫 사용자 턴의 이미지를 base64 로 돌려준다.
// 두 API 가 받는 jpeg, png, gif, webp 가 아니면 ok 는 false 이고 이미지는 프롬프트의 URL 로만 전달된다.
func (c Call) inlineImage(turn int) (mimeType, encoded string, ok bool) {
	if turn != 0 || c.Image == nil || len(c.Image.Data) == 0 {
		return "", "", false
	}
	mimeType = strings.ToLower(strings.TrimSpace(strings.Split(c.Image.MIMEType, ";")[0]))
	switch mimeType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return mimeType, base64.StdEncoding.EncodeToString(c.Image.Data), true
	}
	return "", "", false
}
