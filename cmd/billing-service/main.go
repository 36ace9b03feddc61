package main

import (
	"fmt"
	"os"

	"github.com/aldanbek/gigworks-billing/internal/auth"
	"github.com/aldanbek/gigworks-billing/internal/config"
	"github.com/aldanbek/gigworks-billing/internal/db"
	"github.com/aldanbek/gigworks-billing/internal/excel"
	httphandler "github.com/aldanbek/gigworks-billing/internal/http"
	"github.com/aldanbek/gigworks-billing/internal/http/middleware"
	"github.com/aldanbek/gigworks-billing/internal/logger"
	"github.com/aldanbek/gigworks-billing/internal/pdf"
	"github.com/aldanbek/gigworks-billing/internal/repository"
	"github.com/aldanbek/gigworks-billing/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	ledgerRepo := repository.NewLedgerRepository(database)
	reportRepo := repository.NewReportRepository(database)

	balanceService := service.NewBalanceService(ledgerRepo, cfg, log)
	paymentService := service.NewPaymentService(ledgerRepo, log)
	contractService := service.NewContractService(reportRepo, log)
	adminService := service.NewAdminService(reportRepo, excel.NewGenerator(), pdf.NewGenerator(), cfg, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	authMiddleware := middleware.Auth(tokenParser, reportRepo, log)

	handler := httphandler.NewHandler(balanceService, paymentService, contractService, adminService, log)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting billing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
