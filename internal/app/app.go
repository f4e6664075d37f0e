package app

import (
	"net/http"
	"time"

	"github.com/jagatraya2508/absensi/internal/config"
	"github.com/jagatraya2508/absensi/internal/metrics"
	"github.com/jagatraya2508/absensi/internal/middleware"
	"github.com/jagatraya2508/absensi/internal/shared/connection"
	"github.com/jagatraya2508/absensi/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, applies the global middleware and
// registers every module on router. The returned func releases the
// connections and should run after the server has stopped.
func BuildApp(router *gin.Engine, cfg config.App, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if cfg.DB.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("database migrated")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.DB.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadBytes, logger)
	if err != nil {
		_ = rdb.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	m := metrics.New()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(m.Middleware())
	router.Use(middleware.ContextLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
	router.Static("/uploads", store.Root())

	if err := registerModules(router, modules{
		cfg:     cfg,
		sqlDB:   sqlDB,
		gormDB:  gormDB,
		rdb:     rdb,
		store:   store,
		metrics: m,
		logger:  logger,
	}); err != nil {
		_ = rdb.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	return func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database", zap.Error(err))
		}
	}, nil
}
