package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "fulfillment/api/swagger" // swagger docs
	"fulfillment/internal/config"
	"fulfillment/internal/database"
	"fulfillment/internal/gateway"
	"fulfillment/internal/handler"
	"fulfillment/internal/kafka"
	"fulfillment/internal/lock"
	"fulfillment/internal/logger"
	"fulfillment/internal/middleware"
	"fulfillment/internal/repository"
	"fulfillment/internal/returns"
	"fulfillment/internal/service"
	"fulfillment/internal/websocket"
	"fulfillment/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// @title           Fulfillment Returns API
// @version         1.0
// @description     Customer returns: eligibility, review, inspection, disposition and refunds.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.App.LogLevel, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database.DSN(), cfg.App.IsDevelopment(), zapLogger)
	if err != nil {
		return err
	}
	zapLogger.Info("connected to PostgreSQL")

	jwtSecret := []byte(cfg.Auth.JWTSecret)
	if len(jwtSecret) == 0 {
		zapLogger.Warn("JWT_SECRET not set, using development fallback")
		jwtSecret = []byte("default_super_secret_key")
	}

	// Distributed lock for refunds
	var locker lock.Locker
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
		locker = lock.NewRedisLocker(redisClient, "fulfillment:lock:", zapLogger)
		zapLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		locker = lock.NewLocalLocker()
		zapLogger.Info("redis disabled, using in-process refund lock")
	}

	var producer kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewWriterProducer(cfg.Kafka.Brokers)
	} else {
		producer = kafka.NewLogProducer(zapLogger)
	}

	var paymentGateway gateway.PaymentGateway
	if cfg.Payment.Mock {
		paymentGateway = gateway.NewMockGateway(zapLogger, 50*time.Millisecond)
	} else {
		paymentGateway = gateway.NewHTTPGateway(cfg.Payment.BaseURL, cfg.Payment.Timeout)
	}

	wsHub := websocket.NewHub(zapLogger, cfg.HTTP.CORSOrigins)

	// Repository -> Service -> Handler
	txManager := repository.NewTransactionManager(db)
	repos := service.Repositories{
		Returns:       repository.NewReturnRepository(db),
		Orders:        repository.NewOrderRepository(db),
		Policies:      repository.NewPolicyRepository(db),
		Users:         repository.NewUserRepository(db),
		Products:      repository.NewProductRepository(db),
		QualityChecks: repository.NewQualityCheckRepository(db),
		Damaged:       repository.NewDamagedInventoryRepository(db),
		InventoryTx:   repository.NewInventoryTxRepository(db),
		Outbox:        repository.NewOutboxRepository(db),
		Audit:         repository.NewAuditRepository(db),
	}
	rates := returns.AdjustmentRates{
		Damaged: decimal.NewFromFloat(cfg.Returns.DamagedDeductionRate),
		Missing: decimal.NewFromFloat(cfg.Returns.MissingDeductionRate),
	}

	dispositionService := service.NewDispositionService(repos, txManager, zapLogger)
	returnService := service.NewReturnService(repos, txManager, dispositionService, cfg.Kafka.Topic, zapLogger)
	qualityCheckService := service.NewQualityCheckService(repos, txManager, dispositionService, rates, cfg.Kafka.Topic, zapLogger)
	refundService := service.NewRefundService(repos, txManager, paymentGateway, locker, cfg.Returns.RefundLockTTL, cfg.Kafka.Topic, zapLogger)
	policyService := service.NewPolicyService(repos.Policies, repos.Returns, repos.Products, repos.Audit, txManager, zapLogger)
	damagedService := service.NewDamagedInventoryService(repos, txManager, zapLogger)
	auditService := service.NewAuditService(repos.Audit)
	statisticsService := service.NewStatisticsService(repository.NewStatisticsRepository(db))
	inventoryService := service.NewInventoryService(repos.Products, repos.InventoryTx)
	roleService := service.NewRoleService(repository.NewRoleRepository(db), txManager, zapLogger)

	if err := roleService.SeedDefaultRolesAndPermissions(ctx); err != nil {
		return err
	}
	middleware.InitAuth(jwtSecret, roleService.GetPermissionsByRoleName)
	if err := handler.RegisterValidators(); err != nil {
		return err
	}

	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(zapLogger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, jwtSecret)
	})

	handler.NewReturnHandler(returnService).RegisterRoutes(router.Group(""))
	handler.NewAdminReturnHandler(returnService, qualityCheckService, refundService).RegisterRoutes(router.Group(""))
	handler.NewPolicyHandler(policyService).RegisterRoutes(router.Group(""))
	handler.NewDamagedInventoryHandler(damagedService).RegisterRoutes(router.Group(""))
	handler.NewAuditHandler(auditService).RegisterRoutes(router.Group(""))
	handler.NewStatisticsHandler(statisticsService).RegisterRoutes(router.Group(""))
	handler.NewInventoryHandler(inventoryService).RegisterRoutes(router.Group(""))
	handler.NewRoleHandler(roleService).RegisterRoutes(router.Group(""))

	publisher := kafka.NewPublisher(repos.Outbox, producer, wsHub, kafka.PublisherConfig{
		PollInterval: cfg.Outbox.PollInterval,
		BatchSize:    cfg.Outbox.BatchSize,
		MaxAttempts:  cfg.Outbox.MaxAttempts,
		ClaimLease:   cfg.Outbox.ClaimLease,
	}, zapLogger)
	sweeper := worker.NewExpirySweeper(returnService, cfg.Returns.SweepInterval, cfg.Returns.SweepBatchSize, zapLogger)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLogger.Info("server listening", zap.String("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		wsHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		publisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		sweeper.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zapLogger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		publisher.Shutdown()
		return err
	})

	return g.Wait()
}
