package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/serdarm09/factory-tracker-sub001/internal/config"
	"github.com/serdarm09/factory-tracker-sub001/internal/handler"
	"github.com/serdarm09/factory-tracker-sub001/internal/middleware"
	"github.com/serdarm09/factory-tracker-sub001/internal/model/entity"
	"github.com/serdarm09/factory-tracker-sub001/internal/netsim"
	"github.com/serdarm09/factory-tracker-sub001/internal/repository"
	"github.com/serdarm09/factory-tracker-sub001/internal/service"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting factory-tracker service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("netsim_api", cfg.NetSim.APIURL),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	bridge := netsim.NewClient(cfg.NetSim)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, bridge, rdb)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db, rdb)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB, rdb *redis.Client) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		// NetSim bridge
		ns := v1.Group("/netsim")
		{
			ns.GET("/status", h.NetSim.Status)
			ns.POST("/connect", h.NetSim.Connect)
			ns.GET("/databases", h.NetSim.ListDatabases)

			ns.GET("/orders", h.NetSim.ListOrders)
			ns.GET("/orders/count", h.NetSim.OrderCount)
			ns.GET("/orders/new", h.NetSim.NewOrders)
			ns.GET("/orders/:no/lines", h.NetSim.OrderLines)
			ns.PUT("/orders/:no/delivery-date", h.NetSim.UpdateDeliveryDate)
			ns.POST("/orders/:no/import", h.NetSim.ImportOrder)

			ns.GET("/customers/:no", h.NetSim.GetCustomer)
			ns.GET("/products/:no", h.NetSim.GetProduct)
			ns.GET("/products/:no/recipe", h.NetSim.ProductRecipe)

			ns.GET("/recipes", h.NetSim.ListRecipes)
			ns.GET("/recipes/count", h.NetSim.RecipeCount)
			ns.GET("/recipes/:no/revisions", h.NetSim.RecipeRevisions)
			ns.GET("/recipes/:no/details", h.NetSim.RecipeDetails)
			ns.GET("/revisions/:no/details", h.NetSim.RevisionDetails)
			ns.GET("/details/:no/subdetails", h.NetSim.SubDetails)

			ns.GET("/tables", h.NetSim.ListTables)
			ns.GET("/tables/:name/columns", h.NetSim.TableColumns)
		}

		// Local production tracking
		orders := v1.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.Get)
			orders.PUT("/:id/status", h.Order.UpdateStatus)
			orders.DELETE("/:id", h.Order.Delete)
			orders.DELETE("/:id/lines/:lineId", h.Order.DeleteLine)
		}
	}
}
