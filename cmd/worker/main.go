package main

import (
	"github.com/jagatraya2508/absensi/internal/app"
	"github.com/jagatraya2508/absensi/internal/bootstrap"
	"github.com/jagatraya2508/absensi/internal/config"
	"github.com/jagatraya2508/absensi/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := bootstrap.NewLogger(cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
