package httpserver

import (
	"github.com/gin-gonic/gin"

	"git-commander/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Git Commander is watching"
	HealthVersion = "1.0.0"
	ServiceName   = "git-commander"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the service is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once the crawler finished its first cycle.
// @Summary Readiness Check
// @Description Ready after the first polling cycle completed
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "No cycle finished yet"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	stats := srv.crawler.Stats()
	body := gin.H{
		"version": HealthVersion,
		"service": ServiceName,
		"cycles":  stats.Cycles,
	}
	if stats.Cycles == 0 {
		body["status"] = "starting"
		response.Unavailable(c, "first polling cycle has not finished", body)
		return
	}

	body["status"] = "ready"
	body["message"] = HealthMessage
	response.OK(c, body)
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the service is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
