package middlewares

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Maintenance(enabled bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if enabled {
			log.Println("server is under maintenance")
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "server is under maintenance"})
			return
		}
		ctx.Next()
	}
}
