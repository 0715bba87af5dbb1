package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRouter(runner Runner) *gin.Engine {
	r := gin.Default()
	h := NewHandler(runner)

	r.POST("/api/research", h.Research)
	r.GET("/healthz", h.Health)

	return r
}
