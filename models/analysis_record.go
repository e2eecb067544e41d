package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnalysisStatus 는 비동기 분석 작업의 상태다.
type AnalysisStatus string

const (
	AnalysisPending   AnalysisStatus = "pending"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

// AnalysisRecord 는 분석 요청과 결과를 함께 보관한다.
// Collection: analyses
type AnalysisRecord struct {
	ID        primitive.ObjectID            `bson:"_id,omitempty" json:"-"`
	JobID     string                        `bson:"job_id" json:"job_id"`
	RequestID string                        `bson:"request_id" json:"request_id"`
	Status    AnalysisStatus                `bson:"status" json:"status"`
	Input     AnalyzeRequest                `bson:"input" json:"input"`
	Result    *PressReleaseAnalysisResponse `bson:"result,omitempty" json:"result,omitempty"`
	Error     *ErrorDetail                  `bson:"error,omitempty" json:"error,omitempty"`
	// Published 는 완료/실패 이벤트가 결과 토픽에 발행되었는지를 나타낸다.
	Published bool      `bson:"result_published" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
