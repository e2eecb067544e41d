package renderer

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

const defaultChromePath = "/usr/bin/chromium-browser" // Docker/Linux 기본

// MaxImageBytes 는 모델에 첨부할 이미지의 최대 크기다.
const MaxImageBytes = 5 << 20

// Fetcher 는 보도자료 페이지와 이미지를 가져온다.
type Fetcher struct {
	RenderJS   bool
	ChromePath string
	Timeout    time.Duration
	Client     *http.Client
}

func NewFetcher(renderJS bool, chromePath string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		RenderJS:   renderJS,
		ChromePath: chromePath,
		Timeout:    timeout,
		Client:     &http.Client{Timeout: timeout},
	}
}

// FetchHTML 은 RenderJS 이면 headless chrome 으로, 아니면 HTTP GET 으로 HTML 을 가져온다.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if f.RenderJS {
		return RenderHTML(ctx, url, f.ChromePath, f.Timeout)
	}

	body, _, err := f.get(ctx, url, 0)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchImage 는 이미지 바이트와 MIME 타입을 반환한다. image/* 가 아니면 에러.
func (f *Fetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	body, contentType, err := f.get(ctx, url, MaxImageBytes)
	if err != nil {
		return nil, "", err
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType = http.DetectContentType(body)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, "", fmt.Errorf("unexpected content type %q for image %s", mediaType, url)
	}
	return body, mediaType, nil
}

func (f *Fetcher) get(ctx context.Context, url string, limit int64) ([]byte, string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	var r io.Reader = resp.Body
	if limit > 0 {
		r = io.LimitReader(resp.Body, limit+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}
	if limit > 0 && int64(len(body)) > limit {
		return nil, "", fmt.Errorf("response from %s exceeds %d bytes", url, limit)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// RenderHTML 은 클라이언트 렌더링이 필요한 페이지를 headless chrome 으로 렌더링한다.
func RenderHTML(ctx context.Context, url, chromePath string, timeout time.Duration) (string, error) {
	if chromePath == "" {
		chromePath = defaultChromePath
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.UserAgent(USER_AGENT),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-crashpad", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return "", err
	}
	return htmlContent, nil
}
