package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"press-lens/cmd/api/dto"
	"press-lens/models"
)

// AnalyzeHandler godoc
// @Summary      Analyze a press release
// @Description  Scores the release on 9 media hooks and suggests paragraph-level improvements
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      models.AnalyzeRequest  true  "Press release"
// @Success      200      {object}  models.PressReleaseAnalysisResponse
// @Failure      400      {object}  dto.ErrorResponseDTO
// @Failure      429      {object}  dto.ErrorResponseDTO
// @Failure      502      {object}  dto.ErrorResponseDTO
// @Failure      504      {object}  dto.ErrorResponseDTO
// @Router       /analyze [post]
func AnalyzeHandler(svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)
		var in models.AnalyzeRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondBadBody(c, reqID, err)
			return
		}

		resp, err := svc.Analyze(c.Request.Context(), reqID, in)
		if err != nil {
			respondError(c, reqID, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// AnalyzeURLHandler godoc
// @Summary      Analyze a press release page
// @Description  Fetches the page, extracts title, body and top image, then analyzes it
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalyzeURLRequestDTO  true  "Page URL"
// @Success      200      {object}  models.PressReleaseAnalysisResponse
// @Failure      400      {object}  dto.ErrorResponseDTO
// @Failure      422      {object}  dto.ErrorResponseDTO
// @Failure      502      {object}  dto.ErrorResponseDTO
// @Router       /analyze/url [post]
func AnalyzeURLHandler(importer Importer, svc Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)
		var body dto.AnalyzeURLRequestDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			respondBadBody(c, reqID, err)
			return
		}

		in, err := importer.Import(c.Request.Context(), strings.TrimSpace(body.URL))
		if err != nil {
			respondError(c, reqID, err)
			return
		}
		if in.Metadata == nil {
			in.Metadata = map[string]any{}
		}
		for k, v := range body.Metadata {
			in.Metadata[k] = v
		}

		resp, err := svc.Analyze(c.Request.Context(), reqID, in)
		if err != nil {
			respondError(c, reqID, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// SubmitAnalysisHandler godoc
// @Summary      Submit an asynchronous analysis
// @Description  Stores the request as a pending job and queues it for the processor
// @Tags         analyses
// @Accept       json
// @Produce      json
// @Param        request  body      models.AnalyzeRequest  true  "Press release"
// @Success      202      {object}  dto.JobAcceptedDTO
// @Failure      400      {object}  dto.ErrorResponseDTO
// @Router       /analyses [post]
func SubmitAnalysisHandler(jobs JobQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)
		var in models.AnalyzeRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			respondBadBody(c, reqID, err)
			return
		}

		rec, err := jobs.Submit(c.Request.Context(), reqID, in)
		if err != nil {
			respondError(c, reqID, err)
			return
		}
		c.Header("Location", "/api/v1/analyses/"+rec.JobID)
		c.JSON(http.StatusAccepted, dto.JobAcceptedDTO{JobID: rec.JobID, RequestID: reqID, Status: rec.Status})
	}
}

// GetAnalysisHandler godoc
// @Summary      Get an asynchronous analysis
// @Tags         analyses
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  dto.AnalysisJobDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /analyses/{id} [get]
func GetAnalysisHandler(jobs JobQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)
		rec, err := jobs.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, reqID, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewAnalysisJobDTO(*rec))
	}
}
