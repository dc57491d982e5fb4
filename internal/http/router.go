package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/http/handlers"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ph *handlers.PolicyHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/resend-verification", ah.ResendVerification)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/mfa/verify", ah.VerifyMFA)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.POST("/auth/mfa/enable", ah.EnableMFA)
	v.POST("/auth/mfa/disable", ah.DisableMFA)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", ph.List)
	adm.POST("/policies", ph.Add)
	adm.DELETE("/policies", ph.Remove)

	return r
}
