package middlewares

import (
	"crypto/sha256"
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OperatorAuth admits requests carrying the shared operator secret. An empty
// secret admits nobody.
func OperatorAuth(secret string) gin.HandlerFunc {
	want := sha256.Sum256([]byte(secret))
	return func(ctx *gin.Context) {
		token := ExtractOperatorToken(ctx)
		got := sha256.Sum256([]byte(token))
		if secret == "" || token == "" || subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
			log.Printf("[auth] rejected operator request from %s to %s\n", ctx.ClientIP(), ctx.FullPath())
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx.Next()
	}
}
