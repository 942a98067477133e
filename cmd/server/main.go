package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/billing/backend/internal/application/billing"
	catalogapp "github.com/billing/backend/internal/application/catalog"
	companyapp "github.com/billing/backend/internal/application/company"
	documentapp "github.com/billing/backend/internal/application/document"
	identityapp "github.com/billing/backend/internal/application/identity"
	invoicingapp "github.com/billing/backend/internal/application/invoicing"
	partnerapp "github.com/billing/backend/internal/application/partner"
	quotationapp "github.com/billing/backend/internal/application/quotation"
	"github.com/billing/backend/internal/infrastructure/auth"
	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/billing/backend/internal/infrastructure/logger"
	"github.com/billing/backend/internal/infrastructure/persistence"
	"github.com/billing/backend/internal/infrastructure/seed"
	"github.com/billing/backend/internal/infrastructure/storage"
	"github.com/billing/backend/internal/interfaces/http/handler"
	"github.com/billing/backend/internal/interfaces/http/middleware"
	"github.com/billing/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Billing Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed gorm logging
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	masterItemRepo := persistence.NewGormMasterItemRepository(db.DB)
	masterTermRepo := persistence.NewGormMasterTermRepository(db.DB)
	companyItemRepo := persistence.NewGormCompanyItemRepository(db.DB)
	companyTermRepo := persistence.NewGormCompanyTermRepository(db.DB)
	taxRateRepo := persistence.NewGormTaxRateRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	planRepo := persistence.NewGormSubscriptionPlanRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)

	// Transaction scopes
	invoiceScope := persistence.NewGormInvoiceTransactionScope(db.DB)
	quotationScope := persistence.NewGormQuotationTransactionScope(db.DB)
	profileScope := persistence.NewGormProfileTransactionScope(db.DB)
	clientScope := persistence.NewGormClientTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)
	catalogScope := persistence.NewGormCatalogTransactionScope(db.DB)

	// Seed reference data before serving traffic
	if cfg.Seed.Enabled {
		seeder := seed.NewSeeder(planRepo, taxRateRepo, templateRepo, masterItemRepo, masterTermRepo, log)
		if err := seeder.Run(context.Background()); err != nil {
			log.Fatal("Failed to seed reference data", zap.Error(err))
		}
	}

	// Object storage for rendered documents
	var objectStorage documentapp.ObjectStorageService
	if cfg.Storage.Endpoint != "" || cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3Store(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to provision document bucket", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		log.Warn("Object storage not configured, document uploads disabled")
		objectStorage = storage.NewStubObjectStorage()
	}

	// Application services
	userService := identityapp.NewUserService(userRepo, planRepo, log)
	profileService := companyapp.NewProfileService(profileScope, log)
	clientService := partnerapp.NewClientService(clientScope, log)
	invoiceService := invoicingapp.NewInvoiceService(invoiceScope, log)
	renderService := invoicingapp.NewRenderModelService(invoiceScope, templateRepo)
	quotationService := quotationapp.NewQuotationService(quotationScope, log)
	ledgerService := billingapp.NewLedgerService(billingScope, log)
	companyItemService := catalogapp.NewCompanyItemService(companyItemRepo, masterItemRepo, log)
	termService := catalogapp.NewTermService(catalogScope, masterTermRepo, companyTermRepo, log)
	referenceService := catalogapp.NewReferenceService(masterItemRepo, masterTermRepo, taxRateRepo, templateRepo, userRepo, planRepo)
	importService := catalogapp.NewItemImportService(companyItemRepo, log)
	documentService := documentapp.NewService(documentRepo, objectStorage, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, jwtService)
	profileHandler := handler.NewProfileHandler(profileService)
	clientHandler := handler.NewClientHandler(clientService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, renderService)
	quotationHandler := handler.NewQuotationHandler(quotationService)
	catalogHandler := handler.NewCatalogHandler(companyItemService, termService, importService)
	referenceHandler := handler.NewReferenceHandler(referenceService)
	billingHandler := handler.NewBillingHandler(ledgerService)
	documentHandler := handler.NewDocumentHandler(documentService)
	systemHandler := handler.NewSystemHandler()

	// HTTP engine and global middleware
	middleware.SetupValidator()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	// Routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddleware(jwtService))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/me/name", authHandler.Rename)

	companyRoutes := router.NewDomainGroup("company", "/company")
	companyRoutes.POST("/profiles", profileHandler.Create)
	companyRoutes.GET("/profiles", profileHandler.List)
	companyRoutes.GET("/profiles/default", profileHandler.GetDefault)
	companyRoutes.GET("/profiles/:id", profileHandler.GetByID)
	companyRoutes.PUT("/profiles/:id", profileHandler.Update)
	companyRoutes.POST("/profiles/:id/set-default", profileHandler.SetDefault)
	companyRoutes.DELETE("/profiles/:id", profileHandler.Delete)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/clients", clientHandler.Create)
	partnerRoutes.GET("/clients", clientHandler.List)
	partnerRoutes.GET("/clients/:id", clientHandler.GetByID)
	partnerRoutes.PUT("/clients/:id", clientHandler.Update)
	partnerRoutes.DELETE("/clients/:id", clientHandler.Delete)

	invoiceRoutes := router.NewDomainGroup("invoicing", "/invoices")
	invoiceRoutes.POST("", invoiceHandler.Create)
	invoiceRoutes.GET("", invoiceHandler.List)
	invoiceRoutes.GET("/:id", invoiceHandler.GetByID)
	invoiceRoutes.GET("/:id/render", invoiceHandler.Render)
	invoiceRoutes.DELETE("/:id", invoiceHandler.Delete)
	invoiceRoutes.POST("/:id/items", invoiceHandler.AddItem)
	invoiceRoutes.PUT("/:id/items/:item_id", invoiceHandler.UpdateItem)
	invoiceRoutes.DELETE("/:id/items/:item_id", invoiceHandler.RemoveItem)
	invoiceRoutes.PUT("/:id/discount", invoiceHandler.ApplyDiscount)
	invoiceRoutes.PUT("/:id/note", invoiceHandler.UpdateNote)
	invoiceRoutes.POST("/:id/send", invoiceHandler.Send)
	invoiceRoutes.POST("/:id/pay", invoiceHandler.MarkPaid)
	invoiceRoutes.POST("/:id/overdue", invoiceHandler.MarkOverdue)
	invoiceRoutes.POST("/:id/cancel", invoiceHandler.Cancel)

	quotationRoutes := router.NewDomainGroup("quotation", "/quotations")
	quotationRoutes.POST("", quotationHandler.Create)
	quotationRoutes.GET("", quotationHandler.List)
	quotationRoutes.GET("/:id", quotationHandler.GetByID)
	quotationRoutes.DELETE("/:id", quotationHandler.Delete)
	quotationRoutes.POST("/:id/items", quotationHandler.AddItem)
	quotationRoutes.PUT("/:id/items/:item_id", quotationHandler.UpdateItem)
	quotationRoutes.DELETE("/:id/items/:item_id", quotationHandler.RemoveItem)
	quotationRoutes.PUT("/:id/discount", quotationHandler.ApplyDiscount)
	quotationRoutes.POST("/:id/send", quotationHandler.Send)
	quotationRoutes.POST("/:id/accept", quotationHandler.Accept)
	quotationRoutes.POST("/:id/decline", quotationHandler.Decline)
	quotationRoutes.POST("/:id/cancel", quotationHandler.Cancel)
	quotationRoutes.POST("/:id/convert", quotationHandler.Convert)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/items", catalogHandler.CreateItem)
	catalogRoutes.GET("/items", catalogHandler.ListItems)
	catalogRoutes.POST("/items/import", catalogHandler.ImportItems)
	catalogRoutes.GET("/items/:id", catalogHandler.GetItem)
	catalogRoutes.PUT("/items/:id", catalogHandler.UpdateItem)
	catalogRoutes.DELETE("/items/:id", catalogHandler.DeleteItem)
	catalogRoutes.POST("/terms", catalogHandler.CreateTerm)
	catalogRoutes.GET("/terms", catalogHandler.ListTerms)
	catalogRoutes.GET("/terms/:id", catalogHandler.GetTerm)
	catalogRoutes.PUT("/terms/:id", catalogHandler.UpdateTerm)
	catalogRoutes.POST("/terms/:id/set-default", catalogHandler.SetDefaultTerm)
	catalogRoutes.DELETE("/terms/:id", catalogHandler.DeleteTerm)

	referenceRoutes := router.NewDomainGroup("reference", "/reference")
	referenceRoutes.GET("/master-items", referenceHandler.ListMasterItems)
	referenceRoutes.GET("/master-terms", referenceHandler.ListMasterTerms)
	referenceRoutes.GET("/tax-rates", referenceHandler.ListTaxRates)
	referenceRoutes.GET("/templates", referenceHandler.ListTemplates)
	referenceRoutes.GET("/templates/:code", referenceHandler.ResolveTemplate)

	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.GET("/plans", billingHandler.ListPlans)
	billingRoutes.GET("/usage", billingHandler.GetUsage)
	billingRoutes.PUT("/subscription", billingHandler.UpdateSubscription)
	billingRoutes.POST("/usage/materials", billingHandler.TrackUsage)

	documentRoutes := router.NewDomainGroup("document", "/documents")
	documentRoutes.POST("/uploads", documentHandler.InitiateUpload)
	documentRoutes.POST("", documentHandler.Record)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.GET("/source/:kind/:source_id", documentHandler.ListBySource)
	documentRoutes.GET("/:id", documentHandler.GetByID)
	documentRoutes.DELETE("/:id", documentHandler.Delete)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(companyRoutes).
		Register(partnerRoutes).
		Register(invoiceRoutes).
		Register(quotationRoutes).
		Register(catalogRoutes).
		Register(referenceRoutes).
		Register(billingRoutes).
		Register(documentRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
