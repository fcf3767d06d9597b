package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/distribuidora-pro/internal/application/auth"
	"github.com/tu-usuario/distribuidora-pro/internal/application/catalog"
	"github.com/tu-usuario/distribuidora-pro/internal/application/inventory"
	"github.com/tu-usuario/distribuidora-pro/internal/application/orders"
	"github.com/tu-usuario/distribuidora-pro/internal/application/pricing"
	"github.com/tu-usuario/distribuidora-pro/internal/application/procurement"
	infrapdf "github.com/tu-usuario/distribuidora-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/distribuidora-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/distribuidora-pro/internal/interfaces/http"
	"github.com/tu-usuario/distribuidora-pro/pkg/config"
	"github.com/tu-usuario/distribuidora-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas y catálogo). Las mutaciones de
	// los ciclos de vida corren sobre repositorios atados a la tx del TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	customerPriceRepo := postgres.NewCustomerPriceRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	receiptRepo := postgres.NewGoodsReceiptRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	cashRepo := postgres.NewCashMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Catálogo
	productUC := catalog.NewProductUseCase(productRepo)
	customerUC := catalog.NewCustomerUseCase(customerRepo, customerPriceRepo, priceListRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)
	warehouseUC := catalog.NewWarehouseUseCase(warehouseRepo)
	priceListUC := catalog.NewPriceListUseCase(priceListRepo, productRepo)

	// Cascada de precios (también alimenta la captura de pedidos)
	pricingUC := pricing.NewResolvePriceUseCase(
		orderRepo, customerRepo, customerPriceRepo, priceListRepo, productRepo,
	)

	// Pedidos de venta
	lifecycleUC := orders.NewLifecycleUseCase(
		txRunner, productRepo, customerRepo, warehouseRepo, pricingUC,
		orders.Config{AllowOversell: cfg.Inventory.AllowOversell},
	)
	lineBuilderUC := orders.NewLineBuilderUseCase(productRepo, pricingUC)
	orderQueryUC := orders.NewQueryUseCase(orderRepo, cashRepo)
	paymentUC := orders.NewPaymentUseCase(txRunner)
	pdfGenerator := infrapdf.NewOrderPDFGenerator(cfg.App.Name)
	documentUC := orders.NewDocumentUseCase(orderRepo, productRepo, customerRepo, pdfGenerator)

	// Compras y recepciones
	procurementUC := procurement.NewUseCase(txRunner, productRepo, supplierRepo, warehouseRepo)
	poQueryUC := procurement.NewQueryUseCase(poRepo, receiptRepo)

	// Consultas de inventario
	inventoryUC := inventory.NewQueryUseCase(stockRepo, movementRepo, warehouseRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Distribuidora Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		CustomerUC:    customerUC,
		SupplierUC:    supplierUC,
		WarehouseUC:   warehouseUC,
		PriceListUC:   priceListUC,
		PricingUC:     pricingUC,
		LifecycleUC:   lifecycleUC,
		LineBuilderUC: lineBuilderUC,
		OrderQueryUC:  orderQueryUC,
		PaymentUC:     paymentUC,
		DocumentUC:    documentUC,
		ProcurementUC: procurementUC,
		POQueryUC:     poQueryUC,
		InventoryUC:   inventoryUC,
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
