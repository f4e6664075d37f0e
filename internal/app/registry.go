package app

import (
	"database/sql"

	"github.com/jagatraya2508/absensi/internal/attendance"
	"github.com/jagatraya2508/absensi/internal/config"
	"github.com/jagatraya2508/absensi/internal/face"
	"github.com/jagatraya2508/absensi/internal/leave"
	"github.com/jagatraya2508/absensi/internal/location"
	"github.com/jagatraya2508/absensi/internal/messaging/kafka"
	"github.com/jagatraya2508/absensi/internal/metrics"
	"github.com/jagatraya2508/absensi/internal/middleware"
	"github.com/jagatraya2508/absensi/internal/offday"
	"github.com/jagatraya2508/absensi/internal/rbac"
	"github.com/jagatraya2508/absensi/internal/report"
	"github.com/jagatraya2508/absensi/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	userRate  = 5
	userBurst = 10
)

type modules struct {
	cfg     config.App
	sqlDB   *sql.DB
	gormDB  *gorm.DB
	rdb     *redis.Client
	store   storage.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func registerModules(router *gin.Engine, m modules) error {
	// --- Repositories ---
	faceRepo := face.NewRepository(m.gormDB)
	locationRepo := location.NewRepository(m.gormDB)
	offDayRepo := offday.NewRepository(m.gormDB)
	attendanceRepo := attendance.NewRepository(m.gormDB)
	leaveRepo := leave.NewRepository(m.gormDB)
	reportRepo := report.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.sqlDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService(rbac.DefaultPolicy(), m.logger)
	if err != nil {
		return err
	}

	// --- Services ---
	faceService := face.NewService(faceRepo, m.logger)
	locationService := location.NewService(locationRepo, m.rdb, m.logger)
	offDayService := offday.NewService(m.sqlDB, offDayRepo, m.cfg.Timezone, m.logger)
	attendanceService := attendance.NewService(attendance.Dependencies{
		DB:        m.sqlDB,
		Repo:      attendanceRepo,
		Outbox:    outboxRepo,
		Locations: locationService,
		OffDays:   offDayService,
		Faces:     faceService,
		Store:     m.store,
		Metrics:   m.metrics,
		Timezone:  m.cfg.Timezone,
	}, m.logger)
	leaveService := leave.NewService(leave.Dependencies{
		DB:       m.sqlDB,
		Repo:     leaveRepo,
		Outbox:   outboxRepo,
		Store:    m.store,
		Timezone: m.cfg.Timezone,
	}, m.logger)
	reportService := report.NewService(reportRepo, m.cfg.Timezone, m.logger)

	// --- Handlers ---
	faceHandler := face.NewHandler(faceService, m.logger)
	locationHandler := location.NewHandler(locationService, m.logger)
	offDayHandler := offday.NewHandler(offDayService, m.logger)
	attendanceHandler := attendance.NewHandler(attendanceService, m.store, m.logger)
	leaveHandler := leave.NewHandler(leaveService, m.store, m.logger)
	reportHandler := report.NewHandler(reportService, m.logger)

	auth := gin.HandlersChain{
		middleware.AuthMiddleware(m.cfg.JWTSecret),
		middleware.BindUser(),
		middleware.RateLimitByUser(userRate, userBurst),
	}
	idempotency := middleware.Idempotency(m.rdb, m.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		face.RegisterRoutes(api, faceHandler, auth, rbacService)
		location.RegisterRoutes(api, locationHandler, auth, rbacService)
		offday.RegisterRoutes(api, offDayHandler, auth, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, auth, rbacService, idempotency)
		leave.RegisterRoutes(api, leaveHandler, auth, rbacService, idempotency)
		report.RegisterRoutes(api, reportHandler, auth, rbacService)
	}

	return nil
}
