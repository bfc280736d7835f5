package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/mymove-backend/internal/config"
	"github.com/ignatzorin/mymove-backend/internal/db"
	httpHandlers "github.com/ignatzorin/mymove-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/mymove-backend/internal/http/router"
	"github.com/ignatzorin/mymove-backend/internal/logger"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
	"github.com/ignatzorin/mymove-backend/internal/pricing"
	"github.com/ignatzorin/mymove-backend/internal/repository"
	bidUC "github.com/ignatzorin/mymove-backend/internal/usecase/bid"
	inventoryUC "github.com/ignatzorin/mymove-backend/internal/usecase/inventory"
	moveRequestUC "github.com/ignatzorin/mymove-backend/internal/usecase/moverequest"
	quoteUC "github.com/ignatzorin/mymove-backend/internal/usecase/quote"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера.
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	clk := clock.System{}
	engine := pricing.NewEngine()

	// Репозитории.
	moveRequestRepo := repository.NewMoveRequestRepository(dbConn)
	inventoryRepo := repository.NewInventoryRepository(dbConn)
	quoteRepo := repository.NewQuoteRepository(dbConn)
	bidRepo := repository.NewBidRepository(dbConn)
	providerRepo := repository.NewProviderRepository(dbConn)

	// Use cases.
	createMoveRequest := moveRequestUC.NewCreateMoveRequestUseCase(moveRequestRepo, clk)
	getMoveRequest := moveRequestUC.NewGetMoveRequestUseCase(moveRequestRepo)
	assignProvider := moveRequestUC.NewAssignProviderUseCase(moveRequestRepo, providerRepo, clk)
	expireMoveRequest := moveRequestUC.NewExpireMoveRequestUseCase(moveRequestRepo, clk)

	createInventory := inventoryUC.NewCreateFromDetectedUseCase(inventoryRepo, moveRequestRepo, clk)
	modifyInventory := inventoryUC.NewModifyInventoryUseCase(inventoryRepo)
	confirmInventory := inventoryUC.NewConfirmInventoryUseCase(inventoryRepo, moveRequestRepo, clk)
	getInventory := inventoryUC.NewGetInventoryUseCase(inventoryRepo)

	calculateQuote := quoteUC.NewCalculateQuoteUseCase(providerRepo, moveRequestRepo, inventoryRepo, quoteRepo, engine, cfg.QuoteValidityDays, clk)
	getQuotes := quoteUC.NewGetQuotesUseCase(quoteRepo)

	submitBid := bidUC.NewSubmitBidUseCase(bidRepo, quoteRepo, providerRepo, moveRequestRepo, clk)
	acceptBid := bidUC.NewAcceptBidUseCase(bidRepo, moveRequestRepo, clk)
	rejectBid := bidUC.NewRejectBidUseCase(bidRepo, moveRequestRepo, clk)
	findBestBid := bidUC.NewFindBestBidUseCase(bidRepo, clk)
	listBids := bidUC.NewListBidsUseCase(bidRepo)

	// HTTP хэндлеры.
	moveRequestHandler := httpHandlers.NewMoveRequestHandler(createMoveRequest, getMoveRequest, assignProvider, expireMoveRequest)
	inventoryHandler := httpHandlers.NewInventoryHandler(createInventory, modifyInventory, confirmInventory, getInventory)
	quoteHandler := httpHandlers.NewQuoteHandler(calculateQuote, getQuotes)
	bidHandler := httpHandlers.NewBidHandler(submitBid, acceptBid, rejectBid, findBestBid, listBids)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(providerRepo, clk)

	// Роутер.
	router := httpRouter.SetupRouter(cfg, moveRequestHandler, inventoryHandler, quoteHandler, bidHandler, healthHandler, seedHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
