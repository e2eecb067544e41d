package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"press-lens/extractor"
	"press-lens/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEndToEnd(t *testing.T) {
	paragraphs := []string{"当社は新サービスを開始します。", "料金は月額1,000円です。"}
	provider := &scriptedProvider{replies: []string{analysisJSON(paragraphs, []int{5, 4, 3, 2, 1, 3, 4, 5, 3})}}
	logs := &memoryLogs{}
	svc := NewAnalysisService(newExtractor(provider, 2), nil, nil, logs, AnalysisOptions{})

	resp, err := svc.Analyze(context.Background(), "req_test", models.AnalyzeRequest{
		Title:   "新サービス発表",
		Content: strings.Join(paragraphs, "\n\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, "req_test", resp.RequestID)
	assert.Equal(t, "fake-model", resp.AIModelUsed)
	require.Len(t, resp.MediaHookEvaluations, models.HookCount)
	for i, h := range models.AllHookTypes() {
		assert.Equal(t, h, resp.MediaHookEvaluations[i].HookType)
	}
	require.Len(t, resp.ParagraphImprovements, 2)
	assert.Equal(t, paragraphs[0], resp.ParagraphImprovements[0].OriginalText)
	assert.Equal(t, paragraphs[1], resp.ParagraphImprovements[1].OriginalText)
	assert.Equal(t, 3.3, resp.OverallAssessment.TotalScore)

	require.Len(t, logs.logs, 1)
	assert.Equal(t, "req_test", logs.logs[0].RequestID)
	assert.Equal(t, "ok", logs.logs[0].Outcome)
}

func TestAnalyzeRejectsEmptyInputWithoutCallingProvider(t *testing.T) {
	provider := &scriptedProvider{}
	svc := NewAnalysisService(newExtractor(provider, 2), nil, nil, nil, AnalysisOptions{})

	_, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{Title: "", Content: ""})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, provider.callCount())

	status, detail := Classify(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, CodeInvalidInput, detail.Code)
}

func TestAnalyzeTitleOnly(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisJSON(nil, nil)}}
	svc := NewAnalysisService(newExtractor(provider, 0), nil, nil, nil, AnalysisOptions{})

	resp, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{Title: "タイトルのみ"})
	require.NoError(t, err)
	assert.Empty(t, resp.ParagraphImprovements)
	assert.True(t, strings.HasPrefix(resp.RequestID, "req_"))
}

func TestAnalyzeHTMLContent(t *testing.T) {
	provider := &scriptedProvider{replies: []string{analysisJSON([]string{"a", "b"}, nil)}}
	svc := NewAnalysisService(newExtractor(provider, 0), nil, nil, nil, AnalysisOptions{})

	resp, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{
		Title:         "HTML",
		Content:       "<p>第一段落</p><p>第二段落</p>",
		ContentFormat: models.ContentHTML,
	})
	require.NoError(t, err)
	require.Len(t, resp.ParagraphImprovements, 2)
	assert.Equal(t, "第一段落", resp.ParagraphImprovements[0].OriginalText)
	assert.Equal(t, "第二段落", resp.ParagraphImprovements[1].OriginalText)
}

func TestAnalyzeImageAttachment(t *testing.T) {
	img := &models.ImageData{URL: "https://example.com/top.png", AltText: "製品写真"}

	t.Run("attached", func(t *testing.T) {
		provider := &scriptedProvider{replies: []string{analysisJSON([]string{"本文"}, nil)}}
		images := &fakeImages{data: []byte{0x89, 'P', 'N', 'G'}, mime: "image/png"}
		svc := NewAnalysisService(newExtractor(provider, 0), nil, images, nil, AnalysisOptions{AttachImages: true})

		_, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{Title: "t", Content: "本文", TopImage: img})
		require.NoError(t, err)
		require.NotNil(t, provider.calls[0].Image)
		assert.Equal(t, "image/png", provider.calls[0].Image.MIMEType)
	})

	t.Run("fetch failure adds note", func(t *testing.T) {
		provider := &scriptedProvider{replies: []string{analysisJSON([]string{"本文"}, nil)}}
		images := &fakeImages{err: errors.New("404")}
		svc := NewAnalysisService(newExtractor(provider, 0), nil, images, nil, AnalysisOptions{AttachImages: true})

		_, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{Title: "t", Content: "本文", TopImage: img})
		require.NoError(t, err)
		assert.Nil(t, provider.calls[0].Image)
		assert.Contains(t, provider.calls[0].Turns[0].Text, ImageNoteFetchFailed)
	})

	t.Run("not attached when disabled", func(t *testing.T) {
		provider := &scriptedProvider{replies: []string{analysisJSON([]string{"本文"}, nil)}}
		images := &fakeImages{data: []byte("x"), mime: "image/png"}
		svc := NewAnalysisService(newExtractor(provider, 0), nil, images, nil, AnalysisOptions{})

		_, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{Title: "t", Content: "本文", TopImage: img})
		require.NoError(t, err)
		assert.Nil(t, provider.calls[0].Image)
		assert.Contains(t, provider.calls[0].Turns[0].Text, img.URL)
		assert.Equal(t, 0, images.calls)
	})

	t.Run("invalid input is rejected before fetching", func(t *testing.T) {
		provider := &scriptedProvider{}
		images := &fakeImages{data: []byte("x"), mime: "image/png"}
		svc := NewAnalysisService(newExtractor(provider, 0), nil, images, nil, AnalysisOptions{AttachImages: true})

		_, err := svc.Analyze(context.Background(), "", models.AnalyzeRequest{Content: "---", TopImage: img})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, 0, images.calls)
		assert.Equal(t, 0, provider.callCount())
	})
}

func TestAnalyzeExhaustedRetriesSavesEveryAttempt(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"not json", "not json", "not json"}}
	logs := &memoryLogs{}
	svc := NewAnalysisService(newExtractor(provider, 2), nil, nil, logs, AnalysisOptions{})

	_, err := svc.Analyze(context.Background(), "req_x", models.AnalyzeRequest{Title: "t", Content: "本文"})

	var xerr *extractor.ExtractionError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, extractor.ReasonSchemaViolation, xerr.Reason)
	assert.Equal(t, 3, provider.callCount())
	assert.Len(t, logs.logs, 3)

	status, detail := Classify(err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, CodeAISchemaViolation, detail.Code)
}

func TestValidateRequest(t *testing.T) {
	long := strings.Repeat("あ", MaxTitleRunes+1)

	testCases := []struct {
		name  string
		in    models.AnalyzeRequest
		field string
	}{
		{name: "both empty", in: models.AnalyzeRequest{Title: " ", Content: "\n"}, field: "content"},
		{name: "title too long", in: models.AnalyzeRequest{Title: long, Content: "x"}, field: "title"},
		{name: "content too long", in: models.AnalyzeRequest{Content: strings.Repeat("a", MaxContentRunes+1)}, field: "content"},
		{name: "bad format", in: models.AnalyzeRequest{Title: "t", ContentFormat: "pdf"}, field: "content_format"},
		{name: "bad image url", in: models.AnalyzeRequest{Title: "t", TopImage: &models.ImageData{URL: "ftp://x/y.png"}}, field: "top_image.url"},
		{name: "title only", in: models.AnalyzeRequest{Title: "t"}},
		{name: "legacy content_markdown", in: models.AnalyzeRequest{ContentMarkdown: "本文"}},
		{name: "max title length", in: models.AnalyzeRequest{Title: strings.Repeat("あ", MaxTitleRunes)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRequest(tc.in)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "quota", err: &extractor.ExtractionError{Reason: extractor.ReasonProviderError, Cause: extractor.ErrQuotaExceeded}, status: http.StatusTooManyRequests, code: CodeRateLimited},
		{name: "provider", err: &extractor.ExtractionError{Reason: extractor.ReasonProviderError}, status: http.StatusBadGateway, code: CodeAIServiceError},
		{name: "timeout", err: &extractor.ExtractionError{Reason: extractor.ReasonTimeout}, status: http.StatusGatewayTimeout, code: CodeAITimeout},
		{name: "canceled", err: &extractor.ExtractionError{Reason: extractor.ReasonCanceled}, status: http.StatusRequestTimeout, code: CodeRequestCanceled},
		{name: "import", err: ErrImport, status: http.StatusUnprocessableEntity, code: CodeImportFailed},
		{name: "not found", err: ErrNotFound, status: http.StatusNotFound, code: CodeNotFound},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError, code: CodeAnalysisFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := Classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, detail.Code)
		})
	}
}
