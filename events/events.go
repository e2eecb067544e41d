package events

import (
	"encoding/json"
	"fmt"
	"time"

	"press-lens/models"
)

// EventType 이벤트 타입 정의
type EventType string

const (
	AnalysisRequested EventType = "analysis.requested"
	AnalysisCompleted EventType = "analysis.completed"
	AnalysisFailed    EventType = "analysis.failed"
)

// BaseEvent 모든 이벤트의 기본 구조
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // "api", "processor"
	Version   string    `json:"version"`
}

// NewBaseEvent 는 현재 시각으로 BaseEvent 를 만든다.
func NewBaseEvent(id string, t EventType, source string) BaseEvent {
	return BaseEvent{
		ID:        id,
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Version:   "1",
	}
}

// AnalysisRequestedEvent 비동기 분석 요청 이벤트
type AnalysisRequestedEvent struct {
	BaseEvent
	JobID     string                `json:"job_id"`
	RequestID string                `json:"request_id"`
	Input     models.AnalyzeRequest `json:"input"`
}

// AnalysisCompletedEvent 분석 완료 이벤트
type AnalysisCompletedEvent struct {
	BaseEvent
	JobID  string                              `json:"job_id"`
	Result models.PressReleaseAnalysisResponse `json:"result"`
}

// AnalysisFailedEvent 분석 실패 이벤트
type AnalysisFailedEvent struct {
	BaseEvent
	JobID     string             `json:"job_id"`
	RequestID string             `json:"request_id"`
	Error     models.ErrorDetail `json:"error"`
}

// SerializeEvent 이벤트를 JSON으로 직렬화하고 타입 정보 반환
func SerializeEvent(event any) ([]byte, EventType, error) {
	var eventType EventType

	switch e := event.(type) {
	case AnalysisRequestedEvent:
		eventType = e.Type
	case AnalysisCompletedEvent:
		eventType = e.Type
	case AnalysisFailedEvent:
		eventType = e.Type
	default:
		return nil, "", fmt.Errorf("unknown event type: %T", event)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return data, eventType, nil
}

// DeserializeEvent 이벤트 타입에 따라 적절한 구조체로 역직렬화
func DeserializeEvent(eventType EventType, data []byte) (any, error) {
	var event any

	switch eventType {
	case AnalysisRequested:
		event = &AnalysisRequestedEvent{}
	case AnalysisCompleted:
		event = &AnalysisCompletedEvent{}
	case AnalysisFailed:
		event = &AnalysisFailedEvent{}
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}
