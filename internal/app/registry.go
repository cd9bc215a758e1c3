package app

import (
	"starhr/internal/attendance"
	"starhr/internal/config"
	"starhr/internal/entitlement"
	"starhr/internal/leave"
	"starhr/internal/leavebalance"
	"starhr/internal/middleware"
	"starhr/internal/observability"
	"starhr/internal/rbac"
	"starhr/internal/rbac/infra"
	"starhr/internal/replacementleave"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	svc *services,
	rdb *redis.Client,
	metrics *observability.Metrics,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	policy, err := rbac.DefaultPolicy()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, policy, logger)
	if err != nil {
		return err
	}

	// --- Handlers ---
	entitlementHandler := entitlement.NewHandler(svc.entitlement, logger)
	balanceHandler := leavebalance.NewHandler(svc.balances, logger)
	leaveHandler := leave.NewHandler(svc.leave, logger)
	replacementHandler := replacementleave.NewHandler(svc.replacement, logger)
	attendanceHandler := attendance.NewHandler(svc.attendance, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	auth := middleware.AuthMiddleware(cfg.JWTSecret)
	idempotency := middleware.Idempotency(rdb, cfg.IdempotencyTTL)

	router.GET("/metrics", metrics.Handler())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst))
	{
		entitlement.RegisterRoutes(api, entitlementHandler, rbacService, auth)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService, auth)
		leave.RegisterRoutes(api, leaveHandler, rbacService, auth, idempotency)
		replacementleave.RegisterRoutes(api, replacementHandler, rbacService, auth, idempotency)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, auth)
		rbac.RegisterRoutes(api, rbacHandler, auth)
	}

	return nil
}
