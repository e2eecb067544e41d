package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"press-lens/cmd/api/dto"
	"press-lens/models"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// ListFeedHandler godoc
// @Summary      List recent press releases
// @Description  Reads a PR-wire RSS/Atom feed, or every configured feed when rss_url is omitted
// @Tags         feed
// @Produce      json
// @Param        rss_url  query     string  false  "Feed URL"
// @Param        limit    query     int     false  "Max items (<=100)"
// @Success      200      {object}  dto.FeedResponseDTO
// @Failure      400      {object}  dto.ErrorResponseDTO
// @Router       /feed [get]
func ListFeedHandler(svc FeedLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := requestID(c)
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultFeedLimit)))
		if err != nil || limit <= 0 || limit > maxFeedLimit {
			respondError(c, reqID, models.NewValidationError("limit", "limit must be between 1 and 100"))
			return
		}

		items, err := svc.List(c.Request.Context(), c.Query("rss_url"), limit)
		if err != nil {
			respondError(c, reqID, err)
			return
		}
		c.JSON(http.StatusOK, dto.FeedResponseDTO{Items: items})
	}
}
