package app

import (
	"database/sql"

	"starhr/internal/bootstrap"
	"starhr/internal/config"
	"starhr/internal/middleware"
	"starhr/internal/observability"
	"starhr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func (i *infrastructure) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

func connect(cfg *config.Config, logger *zap.Logger, withRedis bool) (*infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		Port:     cfg.DBPort,
		SSLMode:  cfg.DBSSLMode,
	}, cfg.DBMaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	if cfg.DBAutoMigrate {
		if err := migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("schema migrated")
	}

	conns := &infrastructure{gormDB: gormDB, sqlDB: sqlDB}
	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DBMaxRetries)
		if err != nil {
			conns.Close()
			return nil, err
		}
		conns.rdb = rdb
		logger.Info("redis connection established", zap.String("addr", cfg.RedisAddr))
	}
	return conns, nil
}

// BuildApp wires the HTTP API onto router. The returned func releases the
// connections once the server has stopped.
func BuildApp(router *gin.Engine, cfg *config.Config, audit bootstrap.AuditLogger) (func(), error) {
	logger := zap.L().Named("app.api")

	conns, err := connect(cfg, logger, true)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		metrics.Middleware(),
	)

	svc := buildServices(cfg, conns.sqlDB, conns.gormDB, conns.rdb, metrics, audit, zap.L())
	if err := registerModules(router, cfg, svc, conns.rdb, metrics, zap.L()); err != nil {
		conns.Close()
		return nil, err
	}

	return conns.Close, nil
}
