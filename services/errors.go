package services

import (
	"context"
	"errors"
	"net/http"

	"press-lens/extractor"
	"press-lens/models"
)

// 에러 응답의 code 값
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeRateLimited       = "RATE_LIMITED"
	CodeAIServiceError    = "AI_SERVICE_ERROR"
	CodeAITimeout         = "AI_TIMEOUT"
	CodeAISchemaViolation = "AI_SCHEMA_VIOLATION"
	CodeRequestCanceled   = "REQUEST_CANCELED"
	CodeImportFailed      = "IMPORT_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeAnalysisFailed    = "ANALYSIS_FAILED"
)

// ErrImport 는 URL 의 보도자료를 가져오거나 파싱하지 못한 경우다.
var ErrImport = errors.New("failed to import press release")

// ErrNotFound 는 조회 대상 작업이 없는 경우다.
var ErrNotFound = errors.New("analysis job not found")

// Classify 는 서비스 에러를 HTTP 상태 코드와 응답 상세로 바꾼다.
// 내부 원인 문자열은 응답에 싣지 않는다.
func Classify(err error) (int, models.ErrorDetail) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, models.ErrorDetail{Code: CodeInvalidInput, Message: verr.Message, Field: verr.Field}
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound, models.ErrorDetail{Code: CodeNotFound, Message: "analysis job not found"}
	}
	if errors.Is(err, ErrImport) {
		return http.StatusUnprocessableEntity, models.ErrorDetail{Code: CodeImportFailed, Message: "could not extract a press release from the given URL"}
	}
	if errors.Is(err, extractor.ErrQuotaExceeded) {
		return http.StatusTooManyRequests, models.ErrorDetail{Code: CodeRateLimited, Message: "daily analysis quota exceeded"}
	}

	var xerr *extractor.ExtractionError
	if errors.As(err, &xerr) {
		switch xerr.Reason {
		case extractor.ReasonProviderError:
			return http.StatusBadGateway, models.ErrorDetail{Code: CodeAIServiceError, Message: "the AI service returned an error"}
		case extractor.ReasonTimeout:
			return http.StatusGatewayTimeout, models.ErrorDetail{Code: CodeAITimeout, Message: "the AI service did not respond in time"}
		case extractor.ReasonSchemaViolation:
			return http.StatusBadGateway, models.ErrorDetail{Code: CodeAISchemaViolation, Message: "the AI service returned an invalid analysis"}
		case extractor.ReasonCanceled:
			return http.StatusRequestTimeout, models.ErrorDetail{Code: CodeRequestCanceled, Message: "the request was canceled"}
		}
	}
	if errors.Is(err, context.Canceled) {
		return http.StatusRequestTimeout, models.ErrorDetail{Code: CodeRequestCanceled, Message: "the request was canceled"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, models.ErrorDetail{Code: CodeAITimeout, Message: "the analysis did not finish in time"}
	}
	return http.StatusInternalServerError, models.ErrorDetail{Code: CodeAnalysisFailed, Message: "analysis failed"}
}
