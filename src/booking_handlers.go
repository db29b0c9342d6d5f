package main

import (
	"net/http"

	"portfolio/src/boot"
	"portfolio/src/middlewares"
	"portfolio/src/models"
	"portfolio/src/types"
	"portfolio/src/utils"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	book := g.Group("/book")
	book.
		POST("/request", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				if missing := utils.InvalidFields(err); missing != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "missing": missing})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
				return
			}
			booking, err := app.Bookings.Submit(ctx.Request.Context(), models.NewBooking{
				Name:  body.Name,
				Email: body.Email,
				Date:  body.Date,
				Time:  body.Time,
				Notes: body.Notes,
			})
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
		})

	review := book.Group("/review")
	review.Use(middlewares.OperatorAuth(app.OperatorSecret))
	review.
		GET("", func(ctx *gin.Context) {
			bookings, err := app.Bookings.List(ctx.Request.Context())
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if bookings == nil {
				bookings = []models.Booking{}
			}
			ctx.JSON(http.StatusOK, gin.H{"bookings": bookings})
		}).
		POST("", func(ctx *gin.Context) {
			var body types.ReviewBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
				return
			}
			booking, err := app.Bookings.Review(ctx.Request.Context(), body.ID, types.ReviewAction(body.Action))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
		})
	return g
}
