package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const OPERATOR_TOKEN_HEADER = "X-Admin-Token"

// ExtractOperatorToken reads the operator credential from the token query
// parameter, the X-Admin-Token header or a bearer Authorization header, in that order.
func ExtractOperatorToken(ctx *gin.Context) string {
	if t := ctx.Query("token"); t != "" {
		return t
	}
	if t := ctx.GetHeader(OPERATOR_TOKEN_HEADER); t != "" {
		return t
	}
	bearerToken := ctx.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(bearerToken, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
