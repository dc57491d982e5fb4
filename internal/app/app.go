package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpx "github.com/PraMishra-s/E-Health-Backend-sub001/internal/http"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/config"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/http/handlers"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/http/middleware"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/infrastructure/auth"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/infrastructure/cache"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/infrastructure/database"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/infrastructure/notifications"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/infrastructure/repositories"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/scheduler"
	"github.com/PraMishra-s/E-Health-Backend-sub001/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}
	store := cache.NewRedisCache(rdb.Client)

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, cfg.MailFromAddress, cfg.MailFromName)
	audit := services.NewLogAuditLogger()

	// Repositories
	accountRepo := repositories.NewAccountRepository(gdb)
	credRepo := repositories.NewCredentialRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(gdb)
	leaveRepo := repositories.NewLeaveRepository(gdb)

	// Services
	authSvc := services.NewAuthService(accountRepo, credRepo, sessionRepo, store, passwordSvc, tokenSvc, notificationSvc, audit, services.AuthConfig{
		AccessTTL:       cfg.AccessTTL,
		RefreshTTL:      cfg.RefreshTTL,
		VerificationTTL: cfg.VerificationTTL,
		ResetTTL:        cfg.ResetTTL,
		OTPTTL:          cfg.OTPTTL,
		OTPLength:       cfg.OTPLength,
		RateLimitWindow: cfg.RateLimitWindow,
		RateLimitMax:    cfg.RateLimitMax,
	})
	mfaSvc := services.NewMFAService(accountRepo, credRepo, sessionRepo, store, tokenSvc, audit, cfg.AccessTTL, cfg.RefreshTTL)
	policySvc := services.NewPolicyService(cas.E)

	// Background leave synchronizer
	worker := scheduler.NewLeaveSyncWorker(leaveRepo, store, audit, cfg.LeaveSyncInterval)
	worker.Start(context.Background())
	defer worker.Stop()

	reaper := scheduler.NewSessionReaper(sessionRepo, time.Hour)
	reaper.Start(context.Background())
	defer reaper.Stop()

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, mfaSvc)
	polH := handlers.NewPolicyHandlers(policySvc)
	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, polH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)")
		for _, role := range []string{"role_patient", "role_health_assistant", "role_admin"} {
			cas.E.AddPolicy(role, "/auth/me", "GET")
			cas.E.AddPolicy(role, "/auth/logout", "POST")
			cas.E.AddPolicy(role, "/auth/mfa/*", "POST")
		}
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
