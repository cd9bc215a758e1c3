package app

import (
	"database/sql"

	"starhr/internal/attendance"
	"starhr/internal/bootstrap"
	"starhr/internal/config"
	"starhr/internal/department"
	"starhr/internal/employee"
	"starhr/internal/entitlement"
	"starhr/internal/leave"
	"starhr/internal/leavebalance"
	"starhr/internal/messaging/kafka"
	"starhr/internal/observability"
	"starhr/internal/orghierarchy"
	"starhr/internal/replacementleave"
	"starhr/internal/shared/counter"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is the domain graph shared by the api, worker and consumer.
type services struct {
	entitlement entitlement.Service
	balances    leavebalance.Service
	leave       leave.Service
	replacement replacementleave.Service
	attendance  attendance.Service
}

func buildServices(
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	metrics *observability.Metrics,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) *services {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	hierarchyRepo := orghierarchy.NewRepository(gormDB)
	entitlementRepo := entitlement.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	replacementRepo := replacementleave.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	entitlementService := entitlement.NewService(entitlementRepo, employeeRepo, rdb, cfg.LeaveTypeCacheTTL, logger)
	balanceService := leavebalance.NewService(balanceRepo, entitlementService, logger)
	resolver := orghierarchy.NewResolver(hierarchyRepo, departmentRepo, employeeRepo, logger)
	attendanceService := attendance.NewService(attendanceRepo, logger)

	leaveService := leave.NewService(leave.Deps{
		DB:         db,
		Repo:       leaveRepo,
		Counter:    counterRepo,
		Outbox:     outboxRepo,
		LeaveTypes: entitlementService,
		Ledger:     balanceService,
		Approvers:  resolver,
		Attendance: attendanceService,
		Metrics:    metrics,
		Audit:      audit,
	}, logger)

	replacementService := replacementleave.NewService(replacementleave.Deps{
		DB:        db,
		Repo:      replacementRepo,
		Employees: employeeRepo,
		Ledger:    balanceService,
		Outbox:    outboxRepo,
		Metrics:   metrics,
		Audit:     audit,
	}, logger)

	return &services{
		entitlement: entitlementService,
		balances:    balanceService,
		leave:       leaveService,
		replacement: replacementService,
		attendance:  attendanceService,
	}
}
