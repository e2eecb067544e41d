package dto

import "press-lens/models"

// AnalyzeURLRequestDTO 는 보도자료 페이지 URL 로 분석을 요청한다.
type AnalyzeURLRequestDTO struct {
	URL      string         `json:"url" binding:"required" example:"https://example.com/news/release-1"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// JobAcceptedDTO 는 비동기 분석 접수 응답이다.
type JobAcceptedDTO struct {
	JobID     string                `json:"job_id" example:"5f0c2d0e-4b8c-4a8e-9d0a-1b2c3d4e5f60"`
	RequestID string                `json:"request_id"`
	Status    models.AnalysisStatus `json:"status" example:"pending"`
}

// AnalysisJobDTO 는 비동기 분석 작업 조회 응답이다.
type AnalysisJobDTO struct {
	JobID     string                               `json:"job_id"`
	RequestID string                               `json:"request_id"`
	Status    models.AnalysisStatus                `json:"status"`
	Result    *models.PressReleaseAnalysisResponse `json:"result,omitempty"`
	Error     *models.ErrorDetail                  `json:"error,omitempty"`
}

func NewAnalysisJobDTO(rec models.AnalysisRecord) AnalysisJobDTO {
	return AnalysisJobDTO{
		JobID:     rec.JobID,
		RequestID: rec.RequestID,
		Status:    rec.Status,
		Result:    rec.Result,
		Error:     rec.Error,
	}
}
