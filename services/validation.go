package services

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"press-lens/models"
)

const (
	MaxTitleRunes   = 200
	MaxContentRunes = 50000
)

// ValidateRequest 는 LLM 을 호출하기 전에 거부할 입력을 걸러낸다.
func ValidateRequest(in models.AnalyzeRequest) error {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body())
	if title == "" && body == "" {
		return models.NewValidationError("content", "title and content are both empty")
	}
	if n := utf8.RuneCountInString(in.Title); n > MaxTitleRunes {
		return models.NewValidationError("title", "title must be at most 200 characters")
	}
	if n := utf8.RuneCountInString(in.Body()); n > MaxContentRunes {
		return models.NewValidationError("content", "content must be at most 50000 characters")
	}
	switch in.ContentFormat {
	case "", models.ContentMarkdown, models.ContentHTML:
	default:
		return models.NewValidationError("content_format", "content_format must be markdown or html")
	}
	if in.TopImage != nil && in.TopImage.URL != "" && !isHTTPURL(in.TopImage.URL) {
		return models.NewValidationError("top_image.url", "top_image.url must be an absolute http(s) URL")
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
