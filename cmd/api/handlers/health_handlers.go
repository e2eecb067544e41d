package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"press-lens/cmd/api/dto"
)

// HealthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponseDTO
// @Failure      503  {object}  dto.HealthResponseDTO
// @Router       /health [get]
func HealthHandler(mongoPing Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mongoPing == nil {
			c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := mongoPing(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponseDTO{Status: "degraded", Mongo: "down"})
			return
		}
		c.JSON(http.StatusOK, dto.HealthResponseDTO{Status: "ok", Mongo: "up"})
	}
}
