package main

import (
	"errors"
	"log"
	"net/http"

	"portfolio/src/boot"
	"portfolio/src/common"
	"portfolio/src/types"

	"github.com/gin-gonic/gin"
)

func uploadHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	g.
		POST("/presign", func(ctx *gin.Context) {
			var body types.PresignUploadRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
				return
			}
			if app.Uploads == nil {
				log.Println("Upload presign requested but S3_BUCKET_NAME is not set")
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate secure upload URL."})
				return
			}
			up, err := app.Uploads.Presign(ctx.Request.Context(), body.ContentType, body.FileSize)
			var verr *common.ValidationError
			if errors.As(err, &verr) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			if err != nil {
				log.Printf("Presign generation failed: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate secure upload URL."})
				return
			}
			ctx.JSON(http.StatusOK, up)
		})
	return g
}
