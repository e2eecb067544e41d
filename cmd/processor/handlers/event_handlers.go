package handlers

import (
	"context"

	"press-lens/eventbus"
	"press-lens/events"
	"press-lens/logger"
)

// JobProcessor 는 services.JobService 가 구현한다.
type JobProcessor interface {
	Process(ctx context.Context, e events.AnalysisRequestedEvent) error
}

// EventHandlers 이벤트 핸들러 모음
type EventHandlers struct {
	jobs JobProcessor
}

// NewEventHandlers 새로운 이벤트 핸들러 생성
func NewEventHandlers(jobs JobProcessor) *EventHandlers {
	return &EventHandlers{jobs: jobs}
}

// HandleAnalysisRequested 는 비동기 분석 요청 1건을 처리한다.
// 다른 타입의 이벤트는 무시하고 커밋한다.
func (h *EventHandlers) HandleAnalysisRequested(ctx context.Context, event events.AnalysisRequestedEvent, meta eventbus.Event) error {
	if event.Type != events.AnalysisRequested {
		logger.Log.Debugf("ignoring event %s of type %s", meta.ID, event.Type)
		return nil
	}

	logger.InfoWithFields("handling analysis request", logger.Fields{
		"request_id": event.RequestID,
		"job_id":     event.JobID,
		"retry":      meta.Retry,
	})

	if err := h.jobs.Process(ctx, event); err != nil {
		logger.ErrorWithFields("analysis job failed", logger.Fields{
			"request_id": event.RequestID,
			"job_id":     event.JobID,
			"retry":      meta.Retry,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
