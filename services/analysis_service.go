package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"press-lens/assembler"
	"press-lens/extractor"
	"press-lens/logger"
	"press-lens/models"
	"press-lens/parser"
	"press-lens/prompt"
	"press-lens/segmenter"
	"press-lens/trace"
)

// ImageNoteFetchFailed 는 이미지를 첨부하지 못했을 때 프롬프트에 남기는 메모다.
const ImageNoteFetchFailed = "画像の取得に失敗しました。代替テキストとURLのみで評価してください。"

// Extractor 는 extractor.Extractor 가 구현한다.
type Extractor interface {
	Extract(ctx context.Context, req *prompt.Request) (*extractor.Result, error)
	Deadline(margin time.Duration) time.Duration
}

// ImageFetcher 는 renderer.Fetcher 가 구현한다.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, string, error)
}

// AILogStore 는 repositories.AILogRepository 가 구현한다.
type AILogStore interface {
	InsertMany(ctx context.Context, logs []models.AILog) error
}

type AnalysisOptions struct {
	// AttachImages 가 true 이면 top_image 를 내려받아 모델에 함께 보낸다.
	AttachImages   bool
	DeadlineMargin time.Duration
}

// AnalysisService 는 보도자료 1건의 동기 분석 파이프라인이다.
type AnalysisService struct {
	extractor Extractor
	assembler *assembler.Assembler
	images    ImageFetcher
	logs      AILogStore
	opts      AnalysisOptions
}

// NewAnalysisService 는 서비스를 만든다. images 와 logs 는 nil 이어도 된다.
func NewAnalysisService(ex Extractor, asm *assembler.Assembler, images ImageFetcher, logs AILogStore, opts AnalysisOptions) *AnalysisService {
	if asm == nil {
		asm = assembler.New()
	}
	return &AnalysisService{
		extractor: ex,
		assembler: asm,
		images:    images,
		logs:      logs,
		opts:      opts,
	}
}

// Analyze 는 입력 검증, 문단 분할, 프롬프트 구성, 추출, 조립을 차례로 수행한다.
// requestID 가 비어 있으면 새로 만든다.
func (s *AnalysisService) Analyze(ctx context.Context, requestID string, in models.AnalyzeRequest) (*models.PressReleaseAnalysisResponse, error) {
	if err := ValidateRequest(in); err != nil {
		return nil, err
	}
	if requestID == "" {
		requestID = trace.GenerateID()
	}
	if trace.RequestIDFromContext(ctx) != requestID {
		ctx = trace.WithRequest(ctx, requestID)
	}

	body := in.Body()
	if in.ContentFormat == models.ContentHTML {
		body = parser.PlainText(body)
	}
	paragraphs := segmenter.Segment(body)

	pin := prompt.Input{
		Title:      in.Title,
		Paragraphs: paragraphs,
		Image:      in.TopImage,
		Persona:    in.Persona(),
	}
	// 입력이 유효할 때만 이미지를 내려받는다.
	req, err := prompt.Build(pin)
	if err != nil {
		return nil, err
	}
	if s.attachImage(ctx, requestID, &pin) {
		if req, err = prompt.Build(pin); err != nil {
			return nil, err
		}
	}

	deadline := s.extractor.Deadline(s.opts.DeadlineMargin)
	runCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	logger.InfoWithFields("analysis started", logger.Fields{
		"request_id":  requestID,
		"paragraphs":  len(paragraphs),
		"has_image":   pin.Attachment != nil,
		"deadline_ms": deadline.Milliseconds(),
	})

	result, elapsed, err := s.assembler.Measure(runCtx, func(ctx context.Context) (*extractor.Result, error) {
		return s.extractor.Extract(ctx, req)
	})
	if err != nil {
		var xerr *extractor.ExtractionError
		if errors.As(err, &xerr) {
			s.saveLogs(ctx, requestID, xerr.Log)
		}
		logger.ErrorWithFields("analysis failed", logger.Fields{
			"request_id": requestID,
			"elapsed_ms": elapsed.Milliseconds(),
			"error":      err.Error(),
		})
		return nil, err
	}
	s.saveLogs(ctx, requestID, result.Log)

	resp, corr := s.assembler.Assemble(requestID, result, paragraphs, elapsed)
	if !corr.Empty() {
		logger.WarnWithFields("model output corrected during assembly", logger.Fields{
			"request_id":  requestID,
			"corrections": corr.String(),
		})
	}

	logger.InfoWithFields("analysis completed", logger.Fields{
		"request_id":  requestID,
		"model":       result.Model,
		"attempts":    result.Attempts,
		"total_score": resp.OverallAssessment.TotalScore,
		"elapsed_ms":  resp.ProcessingTimeMs,
	})
	return resp, nil
}

// attachImage 는 이미지를 내려받아 첨부한다. 실패하면 메모만 남기고 분석은 계속한다.
// pin 이 바뀌었으면 true.
func (s *AnalysisService) attachImage(ctx context.Context, requestID string, pin *prompt.Input) bool {
	if !s.opts.AttachImages || s.images == nil || pin.Image == nil || pin.Image.URL == "" {
		return false
	}
	data, mimeType, err := s.images.FetchImage(ctx, pin.Image.URL)
	if err != nil {
		pin.ImageNote = ImageNoteFetchFailed
		logger.WarnWithFields("top image fetch failed", logger.Fields{
			"request_id": requestID,
			"url":        pin.Image.URL,
			"error":      err.Error(),
		})
		return true
	}
	pin.Attachment = &prompt.Attachment{Data: data, MIMEType: mimeType}
	return true
}

// saveLogs 는 시도 로그를 저장한다. 저장 실패는 분석 결과에 영향을 주지 않는다.
func (s *AnalysisService) saveLogs(ctx context.Context, requestID string, attempts []extractor.AttemptLog) {
	if s.logs == nil || len(attempts) == 0 {
		return
	}
	docs := make([]models.AILog, 0, len(attempts))
	for _, a := range attempts {
		doc := models.AILog{
			RequestID:      requestID,
			Attempt:        a.Attempt,
			Provider:       a.Provider,
			ModelName:      a.Model,
			ModelVersion:   a.ModelVersion,
			Outcome:        string(a.Outcome),
			Violations:     a.Violations,
			InputTokens:    a.Usage.InputTokens,
			OutputTokens:   a.Usage.OutputTokens,
			TotalTokens:    a.Usage.TotalTokens,
			DurationMs:     a.Duration.Milliseconds(),
			InputPrompt:    a.Prompt,
			OutputResponse: a.Response,
			RequestedAt:    a.StartedAt,
			CompletedAt:    a.StartedAt.Add(a.Duration),
		}
		if msg := strings.TrimSpace(a.Error); msg != "" {
			doc.ErrorMessage = &msg
		}
		docs = append(docs, doc)
	}

	// 요청 컨텍스트가 취소되어도 로그는 남긴다.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.logs.InsertMany(saveCtx, docs); err != nil {
		logger.WarnWithFields("failed to save ai logs", logger.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		})
	}
}
