package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"jakca/internal/models"
	"jakca/internal/oauth"
	"jakca/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type authResponseUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Platform string `json:"platform"`
	Status   string `json:"status"`
}

func userResponse(user *models.User) authResponseUser {
	return authResponseUser{
		ID:       user.ID,
		Email:    user.Email,
		Nickname: user.Nickname,
		Platform: user.Platform,
		Status:   user.Status,
	}
}

func respondWithSession(c *gin.Context, status int, tokens *service.Tokens, user *models.User) {
	c.JSON(status, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
		"user":         userResponse(user),
	})
}

func Login(accounts AccountService, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "AUTH"
		defer handlePanic(c, route)

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := accounts.Authenticate(ctx, req.Email, req.Password)
		if err != nil {
			log.Println("[AUTH] [WARN] login failed:", err)
			respondServiceError(c, route, err)
			return
		}

		tokens, err := sessions.Issue(ctx, user)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		log.Printf("[AUTH] [INFO] login ok: %s", user.ID)
		respondWithSession(c, http.StatusOK, tokens, user)
	}
}

func Register(accounts AccountService, sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "AUTH"
		defer handlePanic(c, route)

		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		user, err := accounts.Register(ctx, req.Email, req.Password, req.Nickname)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}

		tokens, err := sessions.Issue(ctx, user)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondWithSession(c, http.StatusCreated, tokens, user)
	}
}

func Refresh(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "AUTH"
		defer handlePanic(c, route)

		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		tokens, user, err := sessions.Refresh(ctx, req.RefreshToken)
		if err != nil {
			respondServiceError(c, route, err)
			return
		}
		respondWithSession(c, http.StatusOK, tokens, user)
	}
}

func Logout(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "AUTH"
		defer handlePanic(c, route)

		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		if err := sessions.Revoke(ctx, req.RefreshToken); err != nil && !errors.Is(err, service.ErrInvalidRefreshToken) {
			respondServiceError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// OAuthLogin redirects the browser to the provider's consent page.
func OAuthLogin(idp IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "OAUTH"
		defer handlePanic(c, route)

		target, err := idp.AuthCodeURL(c.Param("provider"))
		if err != nil {
			if errors.Is(err, oauth.ErrUnknownProvider) {
				respondWithError(c, http.StatusNotFound, route, err.Error())
				return
			}
			respondServiceError(c, route, err)
			return
		}
		c.Redirect(http.StatusFound, target)
	}
}

// OAuthCallback completes a provider sign-in, reconciles the local user and
// hands the session to the frontend in the URL fragment. Failures are
// reported to the frontend's login page.
func OAuthCallback(idp IdentityProvider, accounts AccountService, sessions SessionService, frontendURL string) gin.HandlerFunc {
	frontendURL = strings.TrimRight(frontendURL, "/")
	return func(c *gin.Context) {
		const route = "OAUTH"
		defer handlePanic(c, route)

		provider := c.Param("provider")
		fail := func(reason string, err error) {
			log.Printf("[OAUTH] [ERROR] %s callback: %s: %v", provider, reason, err)
			c.Redirect(http.StatusFound, frontendURL+"/login?error="+url.QueryEscape(reason))
		}

		if denied := c.Query("error"); denied != "" {
			fail(denied, errors.New("provider returned error"))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*requestTimeout)
		defer cancel()

		identity, err := idp.Exchange(ctx, provider, c.Query("code"), c.Query("state"))
		if err != nil {
			switch {
			case errors.Is(err, oauth.ErrUnknownProvider):
				respondWithError(c, http.StatusNotFound, route, err.Error())
			case errors.Is(err, oauth.ErrInvalidState):
				fail("invalid_state", err)
			default:
				fail("exchange_failed", err)
			}
			return
		}

		user, err := accounts.Reconcile(ctx, identity)
		if err != nil {
			fail("account_failed", err)
			return
		}
		if !user.IsActive() {
			fail("inactive_account", service.ErrInactiveUser)
			return
		}

		tokens, err := sessions.Issue(ctx, user)
		if err != nil {
			fail("session_failed", err)
			return
		}

		fragment := url.Values{}
		fragment.Set("accessToken", tokens.AccessToken)
		fragment.Set("refreshToken", tokens.RefreshToken)
		c.Redirect(http.StatusFound, frontendURL+"/auth/callback#"+fragment.Encode())
	}
}
