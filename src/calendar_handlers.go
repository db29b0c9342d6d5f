package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"portfolio/src/boot"
	"portfolio/src/config"
	"portfolio/src/middlewares"
	"portfolio/src/types"
	"portfolio/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/grokify/go-pkce"
	"golang.org/x/oauth2"
)

func calendarHandlers(g *gin.RouterGroup, app *boot.App) *gin.RouterGroup {
	cal := g.Group("/calendar")
	cal.
		GET("/auth", middlewares.OperatorAuth(app.OperatorSecret), func(ctx *gin.Context) {
			if missing := app.Config.MissingOAuthVars(); len(missing) > 0 || app.OAuth == nil || len(app.StateKey) == 0 {
				ctx.JSON(http.StatusInternalServerError, gin.H{
					"error":    "Missing Google OAuth configuration",
					"required": []string{"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URI"},
				})
				return
			}
			// Generate nonce
			nonce := make([]byte, 32)
			if _, err := rand.Read(nonce); err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			state := &types.Oauth2FlowState{
				Nonce:    hex.EncodeToString(nonce),
				IssuedAt: time.Now().UTC(),
			}
			b, err := json.Marshal(state)
			if err != nil {
				ctx.Status(http.StatusInternalServerError)
				return
			}
			enc, err := utils.EncryptMessage(app.StateKey, string(b))
			if err != nil {
				log.Printf("Error while encrypting message: %s\n", err.Error())
				ctx.Status(http.StatusInternalServerError)
				return
			}
			// Create code challenge and verifier
			cv := pkce.NewCodeVerifierBytes(nonce)
			cc := pkce.CodeChallengeS256(cv)
			authurl := app.OAuth.AuthCodeURL(
				enc,
				oauth2.AccessTypeOffline,
				oauth2.SetAuthURLParam("prompt", "consent"),
				oauth2.SetAuthURLParam(pkce.ParamCodeChallenge, cc),
				oauth2.SetAuthURLParam(pkce.ParamCodeChallengeMethod, pkce.MethodS256),
			)
			ctx.Redirect(http.StatusFound, authurl)
		}).
		GET("/callback", func(ctx *gin.Context) {
			if denied := ctx.Query("error"); denied != "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": denied})
				return
			}
			var query types.CalendarCallbackQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing code or state"})
				return
			}
			if app.OAuth == nil || len(app.StateKey) == 0 {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Missing Google OAuth configuration"})
				return
			}
			nonce, ok := openState(app.StateKey, query.State)
			if !ok {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired state"})
				return
			}
			cv := pkce.NewCodeVerifierBytes(nonce)
			token, err := app.OAuth.Exchange(
				ctx.Request.Context(),
				query.Code,
				oauth2.SetAuthURLParam(pkce.ParamCodeVerifier, cv),
			)
			if err != nil {
				log.Printf("Error while exchanging authorization code for token: %s\n", err.Error())
				ctx.JSON(http.StatusBadGateway, gin.H{"error": "Token exchange failed"})
				return
			}
			if token.RefreshToken == "" {
				log.Println("Token exchange returned no refresh token; approvals will stop working once it expires")
			}
			if err := app.Tokens.Save(ctx.Request.Context(), token); err != nil {
				log.Printf("Error saving calendar token: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store token"})
				return
			}
			log.Println("Calendar token stored")
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
	return g
}

// openState unseals the OAuth state and returns its nonce while it is fresh.
func openState(key []byte, sealed string) ([]byte, bool) {
	plain, err := utils.DecryptMessage(key, sealed)
	if err != nil {
		log.Printf("Error verifying state: %s\n", err.Error())
		return nil, false
	}
	var state types.Oauth2FlowState
	if err := json.Unmarshal([]byte(plain), &state); err != nil {
		return nil, false
	}
	age := time.Since(state.IssuedAt)
	if age > config.OAUTH_STATE_LIFETIME || age < -time.Minute {
		log.Printf("Rejected OAuth state issued %s ago\n", age.Round(time.Second))
		return nil, false
	}
	nonce, err := hex.DecodeString(state.Nonce)
	if err != nil || len(nonce) != 32 {
		return nil, false
	}
	return nonce, true
}
