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

func contactHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	g.
		POST("/contact", func(ctx *gin.Context) {
			var body types.ContactRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
				return
			}
			err := app.Contact.Send(ctx.Request.Context(), &body)
			var verr *common.ValidationError
			switch {
			case err == nil:
				ctx.JSON(http.StatusOK, gin.H{"success": true})
			case errors.As(err, &verr):
				ctx.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "missing": verr.Missing})
			case errors.Is(err, common.ErrContactNotConfigured):
				log.Println("Contact form used without OWNER_EMAIL or a mail driver")
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			default:
				log.Printf("Error sending contact email: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
			}
		})
	return g
}
