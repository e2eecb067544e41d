// Package parser extracts the title, body text and top image of a press
// release page.
package parser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/advancedlogic/GoOse/pkg/goose"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Strategy 는 본문 추출기 선택이다.
type Strategy string

const (
	StrategyAuto        Strategy = "auto"
	StrategyReadability Strategy = "readability"
	StrategyTrafilatura Strategy = "trafilatura"
	StrategyGoose       Strategy = "goose"
)

var ErrNoContent = errors.New("no article content found")

// ParsedArticle 의 Text 는 문단이 빈 줄로 구분된 본문이다.
type ParsedArticle struct {
	Title    string
	Text     string
	TopImage string
	ImageAlt string
	Parser   Strategy
}

// Parse 는 전략에 따라 본문을 추출한다. auto 는 readability, trafilatura, goose 순으로
// 본문이 나올 때까지 시도한다.
func Parse(htmlStr, pageURL string, strategy Strategy) (*ParsedArticle, error) {
	chain := []Strategy{strategy}
	if strategy == "" || strategy == StrategyAuto {
		chain = []Strategy{StrategyReadability, StrategyTrafilatura, StrategyGoose}
	}

	var errs []error
	for _, s := range chain {
		article, err := parseWith(s, htmlStr, pageURL)
		if err == nil && strings.TrimSpace(article.Text) == "" {
			err = ErrNoContent
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s, err))
			continue
		}
		article.Parser = s
		fillFromMeta(article, htmlStr, pageURL)
		return article, nil
	}
	return nil, errors.Join(errs...)
}

func parseWith(s Strategy, htmlStr, pageURL string) (*ParsedArticle, error) {
	switch s {
	case StrategyReadability:
		return ParseHtmlWithReadability(htmlStr, pageURL)
	case StrategyTrafilatura:
		return ParseHtmlWithTrafilatura(htmlStr, pageURL)
	case StrategyGoose:
		return ParseHtmlWithGoose(htmlStr, pageURL)
	}
	return nil, fmt.Errorf("unsupported parser %q", s)
}

func ParseHtmlWithReadability(htmlStr, pageURL string) (*ParsedArticle, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}

	article, err := readability.FromDocument(doc, parseURL(pageURL))
	if err != nil {
		return nil, err
	}

	text := PlainText(article.Content)
	if text == "" {
		text = joinLines(article.TextContent)
	}
	return &ParsedArticle{
		Title:    strings.TrimSpace(article.Title),
		Text:     text,
		TopImage: article.Image,
	}, nil
}

func ParseHtmlWithTrafilatura(htmlStr, pageURL string) (*ParsedArticle, error) {
	opts := trafilatura.Options{
		IncludeImages: true,
		OriginalURL:   parseURL(pageURL),
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return nil, err
	}

	return &ParsedArticle{
		Title:    strings.TrimSpace(article.Metadata.Title),
		Text:     joinLines(article.ContentText),
		TopImage: article.Metadata.Image,
	}, nil
}

func ParseHtmlWithGoose(htmlStr, pageURL string) (*ParsedArticle, error) {
	g := goose.New()
	article, err := g.ExtractFromRawHTML(htmlStr, pageURL)
	if err != nil {
		return nil, err
	}
	return &ParsedArticle{
		Title:    strings.TrimSpace(article.Title),
		Text:     joinLines(article.CleanedText),
		TopImage: article.TopImage,
	}, nil
}

// fillFromMeta 는 추출기가 놓친 제목과 이미지를 og 메타 태그에서 보충하고 이미지 alt 를 찾는다.
func fillFromMeta(a *ParsedArticle, htmlStr, pageURL string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return
	}

	if a.Title == "" {
		a.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	}
	if a.Title == "" {
		a.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if a.TopImage == "" {
		a.TopImage = strings.TrimSpace(doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))
	}
	a.TopImage = resolve(pageURL, a.TopImage)
	if a.TopImage == "" {
		return
	}

	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		if resolve(pageURL, src) != a.TopImage {
			return true
		}
		a.ImageAlt = strings.TrimSpace(img.AttrOr("alt", ""))
		return false
	})
	if a.ImageAlt == "" {
		a.ImageAlt = strings.TrimSpace(doc.Find(`meta[property="og:image:alt"]`).AttrOr("content", ""))
	}
}

func parseURL(raw string) *url.URL {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

func resolve(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	b := parseURL(base)
	r, err := url.Parse(ref)
	if b == nil || err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// joinLines 는 줄 단위 텍스트를 빈 줄로 구분된 문단으로 바꾼다.
func joinLines(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n\n")
}
