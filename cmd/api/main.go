package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/payroll"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/application/txretry"
	"github.com/jhoicas/bananera-ledger/internal/infrastructure/backend"
	infrakafka "github.com/jhoicas/bananera-ledger/internal/infrastructure/kafka"
	inframetrics "github.com/jhoicas/bananera-ledger/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/bananera-ledger/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/bananera-ledger/internal/interfaces/http"
	"github.com/jhoicas/bananera-ledger/pkg/config"
	"github.com/jhoicas/bananera-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := inframetrics.NewPrometheusRecorder(registry)

	var notifier ports.AlertNotifier = ports.NopNotifier{}
	if cfg.Kafka.Enabled() {
		publisher, err := infrakafka.NewAlertPublisher(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Kafka")
		}
		defer publisher.Close()
		notifier = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AlertsTopic).Msg("publicación de alertas habilitada")
	}

	clock := ports.SystemClock{}
	retry := txretry.New(cfg.Ledger.RetryAttempts, cfg.Ledger.RetryBackoff, log, metrics)

	ledgerUC := inventory.NewLedgerUseCase(store.Tx, store.StockRecords, store.Movements, retry, clock, notifier, metrics, log.Component("inventory"))
	alertUC := inventory.NewAlertUseCase(store.Tx, store.Alerts, store.StockRecords, retry, clock, log.Component("alerts"))
	replenishmentUC := inventory.NewReplenishmentUseCase(store.StockRecords)
	payrollUC := payroll.NewUseCase(store.Tx, store.Payroll, retry, clock, metrics, log.Component("payroll"))
	payslipUC := payroll.NewPayslipUseCase(payrollUC, infrapdf.NewMarotoPayslipGenerator(cfg.App.Name))
	loanUC := loan.NewUseCase(store.Tx, store.Loans, retry, clock, metrics, log.Component("loans"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bananera Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": store.Driver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:        ledgerUC,
		Alerts:        alertUC,
		Replenishment: replenishmentUC,
		Payroll:       payrollUC,
		Payslip:       payslipUC,
		Loans:         loanUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
