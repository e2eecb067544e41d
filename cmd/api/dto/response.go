package dto

import "press-lens/models"

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error     models.ErrorDetail `json:"error"`
	RequestID string             `json:"request_id" example:"req_0b6f1c1e-8a7c-4d43-9a53-0a4cf0f5e7a2"`
}

// HealthResponseDTO 는 /health 응답이다.
type HealthResponseDTO struct {
	Status string `json:"status" example:"ok"`
	Mongo  string `json:"mongo,omitempty" example:"up"`
}
