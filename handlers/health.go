package handlers

import (
	"net/http"

	"oasis/utils"

	"github.com/gin-gonic/gin"
)

// Health handles GET /health with the last snapshot from the health monitor.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, utils.Response{Success: code == http.StatusOK, Message: "Hi, I'm Oasis", Data: status})
}
