package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devhubhq/devhub-api/internal/container"
	handlers "github.com/devhubhq/devhub-api/internal/interface/http"
	"github.com/devhubhq/devhub-api/internal/interface/middleware"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// AuthModule wires registration, login, and the token lifecycle endpoints.
// Public endpoints carry tight per-IP limits; the abuse-prone email senders
// are the tightest.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	emailLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	tokenLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/verify-email", tokenLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/resend-verification", emailLimiter, m.Handler.ResendVerification)
	rg.POST("/auth/forgot-password", emailLimiter, m.Handler.ForgotPassword)
	rg.POST("/auth/reset-password", tokenLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/auth/me", m.Handler.Me)
		auth.POST("/auth/change-password", m.Handler.ChangePassword)
	}
}
