package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"press-lens/cmd/api/dto"
	"press-lens/feeder"
	"press-lens/logger"
	"press-lens/models"
	"press-lens/services"
	"press-lens/trace"
)

// Analyzer 는 services.AnalysisService 가 구현한다.
type Analyzer interface {
	Analyze(ctx context.Context, requestID string, in models.AnalyzeRequest) (*models.PressReleaseAnalysisResponse, error)
}

// Importer 는 services.ImportService 가 구현한다.
type Importer interface {
	Import(ctx context.Context, pageURL string) (models.AnalyzeRequest, error)
}

// FeedLister 는 services.FeedService 가 구현한다.
type FeedLister interface {
	List(ctx context.Context, rssURL string, limit int) ([]feeder.FeedItem, error)
}

// JobQueue 는 services.JobService 가 구현한다.
type JobQueue interface {
	Submit(ctx context.Context, requestID string, in models.AnalyzeRequest) (*models.AnalysisRecord, error)
	Get(ctx context.Context, jobID string) (*models.AnalysisRecord, error)
}

// Pinger 는 의존 저장소 상태를 확인한다.
type Pinger func(ctx context.Context) error

// requestID 는 RequestTrace 미들웨어가 넣은 ID 를 꺼낸다.
func requestID(c *gin.Context) string {
	if id := trace.RequestIDFromContext(c.Request.Context()); id != "" {
		return id
	}
	return trace.GenerateID()
}

// respondError 는 서비스 에러를 공통 에러 응답으로 쓴다.
func respondError(c *gin.Context, reqID string, err error) {
	status, detail := services.Classify(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithFields("request failed", logger.Fields{
			"request_id": reqID,
			"path":       c.Request.URL.Path,
			"status":     status,
			"code":       detail.Code,
			"error":      err.Error(),
		})
	}
	c.JSON(status, dto.ErrorResponseDTO{Error: detail, RequestID: reqID})
}

func respondBadBody(c *gin.Context, reqID string, err error) {
	logger.Log.Debugf("bind failed request_id=%s: %v", reqID, err)
	respondError(c, reqID, models.NewValidationError("body", "request body is not valid JSON for this endpoint"))
}
