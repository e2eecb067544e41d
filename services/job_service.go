package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"press-lens/eventbus"
	"press-lens/events"
	"press-lens/logger"
	"press-lens/models"
	"press-lens/repositories"
)

// AnalysisStore 는 repositories.AnalysisRepository 가 구현한다.
type AnalysisStore interface {
	InsertPending(ctx context.Context, rec *models.AnalysisRecord) error
	FindByJobID(ctx context.Context, jobID string) (*models.AnalysisRecord, error)
	MarkCompleted(ctx context.Context, jobID string, result *models.PressReleaseAnalysisResponse) error
	MarkFailed(ctx context.Context, jobID string, detail models.ErrorDetail) error
	MarkPublished(ctx context.Context, jobID string) error
	ListPendingBefore(ctx context.Context, before time.Time, limit int64) ([]models.AnalysisRecord, error)
}

// Publisher 는 eventbus.EventBus 의 발행 부분이다.
type Publisher interface {
	Publish(ctx context.Context, topic string, event eventbus.Event) error
}

// Analyzer 는 AnalysisService 가 구현한다.
type Analyzer interface {
	Analyze(ctx context.Context, requestID string, in models.AnalyzeRequest) (*models.PressReleaseAnalysisResponse, error)
}

// JobService 는 비동기 분석 작업을 접수하고 처리한다.
// api 는 Submit/Get 을, processor 는 Process 를 사용한다.
type JobService struct {
	store    AnalysisStore
	bus      Publisher
	analyzer Analyzer
	source   string
}

func NewJobService(store AnalysisStore, bus Publisher, analyzer Analyzer, source string) *JobService {
	return &JobService{store: store, bus: bus, analyzer: analyzer, source: source}
}

// Submit 은 입력을 검증하고 pending 레코드를 저장한 뒤 요청 이벤트를 발행한다.
func (s *JobService) Submit(ctx context.Context, requestID string, in models.AnalyzeRequest) (*models.AnalysisRecord, error) {
	if err := ValidateRequest(in); err != nil {
		return nil, err
	}

	// 구 API 의 content_markdown 은 저장되지 않으므로 content 로 옮긴다.
	in.Content, in.ContentMarkdown = in.Body(), ""

	rec := &models.AnalysisRecord{
		JobID:     uuid.NewString(),
		RequestID: requestID,
		Input:     in,
	}
	if err := s.store.InsertPending(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save analysis job: %w", err)
	}

	if err := s.publishRequested(ctx, rec); err != nil {
		detail := models.ErrorDetail{Code: CodeAnalysisFailed, Message: "failed to enqueue analysis"}
		if markErr := s.store.MarkFailed(ctx, rec.JobID, detail); markErr != nil {
			logger.Log.Errorf("failed to mark job %s as failed: %v", rec.JobID, markErr)
		}
		return nil, fmt.Errorf("failed to publish analysis request: %w", err)
	}

	logger.InfoWithFields("analysis job submitted", logger.Fields{
		"request_id": requestID,
		"job_id":     rec.JobID,
	})
	return rec, nil
}

// Get 은 작업 상태와 결과를 조회한다.
func (s *JobService) Get(ctx context.Context, jobID string) (*models.AnalysisRecord, error) {
	rec, err := s.store.FindByJobID(ctx, jobID)
	if errors.Is(err, repositories.ErrAnalysisNotFound) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Process 는 요청 이벤트 1건을 분석하고 결과를 저장, 발행한다.
// 분석 실패는 failed 로 기록하고 nil 을 반환한다. 저장소나 브로커 오류만 재시도 대상이다.
// 이미 끝난 작업이 재전달되면 분석하지 않고, 결과 이벤트가 아직 발행되지 않았을 때만 저장된 결과로 발행한다.
func (s *JobService) Process(ctx context.Context, e events.AnalysisRequestedEvent) error {
	rec, err := s.store.FindByJobID(ctx, e.JobID)
	if errors.Is(err, repositories.ErrAnalysisNotFound) {
		return eventbus.Permanent(fmt.Errorf("job %s: %w", e.JobID, ErrNotFound))
	}
	if err != nil {
		return err
	}
	if rec.Status != models.AnalysisPending {
		if rec.Published {
			logger.Log.Infof("job %s already %s, skipping", e.JobID, rec.Status)
			return nil
		}
		return s.publishResult(ctx, rec)
	}

	resp, err := s.analyzer.Analyze(ctx, e.RequestID, e.Input)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		_, detail := Classify(err)
		if markErr := s.store.MarkFailed(ctx, e.JobID, detail); markErr != nil {
			return markErr
		}
		rec.Status, rec.Error = models.AnalysisFailed, &detail
		return s.publishResult(ctx, rec)
	}

	if err := s.store.MarkCompleted(ctx, e.JobID, resp); err != nil {
		return err
	}
	rec.Status, rec.Result = models.AnalysisCompleted, resp
	return s.publishResult(ctx, rec)
}

// publishResult 는 끝난 작업의 완료/실패 이벤트를 발행하고 발행 사실을 기록한다.
// 발행 후 기록이 실패하면 재전달 시 이벤트가 한 번 더 나갈 수 있다.
func (s *JobService) publishResult(ctx context.Context, rec *models.AnalysisRecord) error {
	var err error
	switch {
	case rec.Status == models.AnalysisCompleted && rec.Result != nil:
		err = s.publishCompleted(ctx, rec.JobID, rec.Result)
	case rec.Status == models.AnalysisFailed:
		detail := models.ErrorDetail{Code: CodeAnalysisFailed, Message: "analysis failed"}
		if rec.Error != nil {
			detail = *rec.Error
		}
		err = s.publishFailed(ctx, rec.JobID, rec.RequestID, detail)
	default:
		return eventbus.Permanent(fmt.Errorf("job %s has status %s without a result", rec.JobID, rec.Status))
	}
	if err != nil {
		return err
	}
	return s.store.MarkPublished(ctx, rec.JobID)
}

// RecoverPending 은 staleAfter 이상 pending 으로 남은 작업의 요청 이벤트를 다시 발행한다.
// expireAfter 보다 오래된 작업은 재발행하지 않고 failed 로 기록한다.
func (s *JobService) RecoverPending(ctx context.Context, now time.Time, staleAfter, expireAfter time.Duration, limit int64) (republished, expired int, err error) {
	recs, err := s.store.ListPendingBefore(ctx, now.Add(-staleAfter), limit)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list pending jobs: %w", err)
	}

	for i := range recs {
		rec := &recs[i]
		if expireAfter > 0 && now.Sub(rec.CreatedAt) > expireAfter {
			detail := models.ErrorDetail{Code: CodeAnalysisFailed, Message: "analysis job expired before completion"}
			if err := s.store.MarkFailed(ctx, rec.JobID, detail); err != nil {
				return republished, expired, err
			}
			rec.Status, rec.Error = models.AnalysisFailed, &detail
			if err := s.publishResult(ctx, rec); err != nil {
				return republished, expired, err
			}
			expired++
			continue
		}
		if err := s.publishRequested(ctx, rec); err != nil {
			return republished, expired, err
		}
		republished++
	}

	if republished > 0 || expired > 0 {
		logger.Log.Infof("pending job recovery: republished=%d expired=%d", republished, expired)
	}
	return republished, expired, nil
}

func (s *JobService) publishRequested(ctx context.Context, rec *models.AnalysisRecord) error {
	e := events.AnalysisRequestedEvent{
		BaseEvent: events.NewBaseEvent(uuid.NewString(), events.AnalysisRequested, s.source),
		JobID:     rec.JobID,
		RequestID: rec.RequestID,
		Input:     rec.Input,
	}
	evt, err := eventbus.NewJSONEvent(rec.JobID, string(e.Type), e, 0)
	if err != nil {
		return err
	}
	return s.bus.Publish(ctx, eventbus.TopicAnalysisRequests.Base(), evt)
}

func (s *JobService) publishCompleted(ctx context.Context, jobID string, resp *models.PressReleaseAnalysisResponse) error {
	e := events.AnalysisCompletedEvent{
		BaseEvent: events.NewBaseEvent(uuid.NewString(), events.AnalysisCompleted, s.source),
		JobID:     jobID,
		Result:    *resp,
	}
	evt, err := eventbus.NewJSONEvent("", string(e.Type), e, 0)
	if err != nil {
		return eventbus.Permanent(err)
	}
	return s.bus.Publish(ctx, eventbus.TopicAnalysisResults.Base(), evt)
}

func (s *JobService) publishFailed(ctx context.Context, jobID, requestID string, detail models.ErrorDetail) error {
	e := events.AnalysisFailedEvent{
		BaseEvent: events.NewBaseEvent(uuid.NewString(), events.AnalysisFailed, s.source),
		JobID:     jobID,
		RequestID: requestID,
		Error:     detail,
	}
	evt, err := eventbus.NewJSONEvent("", string(e.Type), e, 0)
	if err != nil {
		return eventbus.Permanent(err)
	}
	return s.bus.Publish(ctx, eventbus.TopicAnalysisResults.Base(), evt)
}
