package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"press-lens/logger"
	"press-lens/models"
	"press-lens/parser"
)

// PageFetcher 는 renderer.Fetcher 가 구현한다.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// ImportService 는 보도자료 페이지 URL 을 분석 입력으로 바꾼다.
type ImportService struct {
	pages    PageFetcher
	strategy parser.Strategy
}

func NewImportService(pages PageFetcher, strategy parser.Strategy) *ImportService {
	return &ImportService{pages: pages, strategy: strategy}
}

// Import 는 페이지를 가져와 제목, 본문, 대표 이미지를 추출한다.
// 본문 길이 상한을 넘으면 잘라서 돌려준다.
func (s *ImportService) Import(ctx context.Context, pageURL string) (models.AnalyzeRequest, error) {
	pageURL = strings.TrimSpace(pageURL)
	if !isHTTPURL(pageURL) {
		return models.AnalyzeRequest{}, models.NewValidationError("url", "url must be an absolute http(s) URL")
	}

	htmlStr, err := s.pages.FetchHTML(ctx, pageURL)
	if err != nil {
		logger.WarnWithFields("press release fetch failed", logger.Fields{"url": pageURL, "error": err.Error()})
		return models.AnalyzeRequest{}, fmt.Errorf("%w: %v", ErrImport, err)
	}

	article, err := parser.Parse(htmlStr, pageURL, s.strategy)
	if err != nil {
		logger.WarnWithFields("press release parse failed", logger.Fields{"url": pageURL, "error": err.Error()})
		return models.AnalyzeRequest{}, fmt.Errorf("%w: %v", ErrImport, err)
	}

	req := models.AnalyzeRequest{
		Title:         truncateRunes(strings.TrimSpace(article.Title), MaxTitleRunes),
		Content:       truncateRunes(article.Text, MaxContentRunes),
		ContentFormat: models.ContentMarkdown,
		Metadata:      map[string]any{"source_url": pageURL, "parser": string(article.Parser)},
	}
	if article.TopImage != "" && isHTTPURL(article.TopImage) {
		req.TopImage = &models.ImageData{URL: article.TopImage, AltText: article.ImageAlt}
	}

	logger.InfoWithFields("press release imported", logger.Fields{
		"url":       pageURL,
		"parser":    string(article.Parser),
		"has_image": req.TopImage != nil,
	})
	return req, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
