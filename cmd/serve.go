package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/common/logger"
	commonmw "github.com/yashrajoria/restaurant-service/common/middleware"
	"github.com/yashrajoria/restaurant-service/config"
	"github.com/yashrajoria/restaurant-service/controllers"
	"github.com/yashrajoria/restaurant-service/database"
	"github.com/yashrajoria/restaurant-service/events"
	"github.com/yashrajoria/restaurant-service/middleware"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"github.com/yashrajoria/restaurant-service/repository"
	"github.com/yashrajoria/restaurant-service/routes"
	"github.com/yashrajoria/restaurant-service/services"
	"go.uber.org/zap"
)

const (
	serviceName     = "restaurant-api"
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply schema migrations before serving")
	rootCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Apply schema migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// AWS is optional: without it CloudWatch, SNS and uploads stay disabled.
	awsCfg, awsErr := awspkg.LoadAWSConfig(ctx)

	log := newLogger(ctx, cfg, awsCfg, awsErr)
	defer func() { _ = log.Sync() }()
	if awsErr != nil {
		log.Warn("AWS config unavailable, AWS integrations disabled", zap.Error(awsErr))
	}

	metrics := awspkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, cfg.CloudWatchEnabled && awsErr == nil)

	db, err := database.ConnectPostgres(cfg.PostgresDSN(), log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if autoMigrate {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisClient := database.ConnectRedis(cfg.RedisURL, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, err := newPublisher(cfg, awsCfg, awsErr)
	if err != nil {
		return err
	}
	defer publisher.Close()
	log.Info("Event publisher ready", zap.String("backend", cfg.EventBackend))

	menuCache := services.NewCacheManager(redisClient, "menus", cfg.CacheTTL, metrics, log)
	statsCache := services.NewCacheManager(redisClient, "statistics", cfg.CacheTTL, metrics, log)

	userRepo := repository.NewGormUserRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	menuRepo := repository.NewGormMenuRepository(db)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var presigner awspkg.Presigner
	if cfg.S3Bucket != "" && awsErr == nil {
		presigner = awspkg.NewS3Presigner(awsCfg, cfg.S3Bucket)
	}

	h := routes.Controllers{
		Auth: controllers.NewAuthController(
			services.NewAuthService(userRepo, tokens, publisher, metrics, log)),
		Category: controllers.NewCategoryController(
			services.NewCategoryService(categoryRepo, menuCache, log)),
		Menu: controllers.NewMenuController(
			services.NewMenuService(menuRepo, categoryRepo, menuCache, cfg.TopRatedLimit, log)),
		Order: controllers.NewOrderController(
			services.NewOrderService(repository.NewGormOrderRepository(db), cfg.OrderTaxRate, publisher, metrics, log)),
		Reservation: controllers.NewReservationController(
			services.NewReservationService(repository.NewGormReservationRepository(db),
				services.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, metrics, log)),
		Review: controllers.NewReviewController(
			services.NewReviewService(repository.NewGormReviewRepository(db), menuRepo, menuCache, publisher, metrics, log)),
		Campaign: controllers.NewCampaignController(
			services.NewCampaignService(repository.NewGormCampaignRepository(db), log)),
		Contact: controllers.NewContactController(
			services.NewContactService(repository.NewGormContactRepository(db), publisher, log)),
		Subscription: controllers.NewSubscriptionController(
			services.NewSubscriptionService(repository.NewGormSubscriptionRepository(db), log)),
		Statistics: controllers.NewStatisticsController(
			services.NewStatisticsService(repository.NewGormStatisticsRepository(db), statsCache)),
		Upload: controllers.NewUploadController(
			services.NewUploadService(presigner, cfg.S3Bucket, cfg.S3PublicBaseURL, cfg.UploadURLExpiry, log)),
	}

	router := NewRouter(cfg, log, metrics, tokens, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Restaurant API listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	case <-ctx.Done():
	}

	log.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Server shutdown complete")
	return nil
}

// NewRouter assembles the middleware chain and mounts every route.
func NewRouter(cfg *config.Config, log *zap.Logger, metrics *awspkg.MetricsClient, tokens services.TokenService, h routes.Controllers) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			logger.Error(c, "panic recovered", nil, zap.Any("panic", recovered))
			c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.ErrInternalServer)
		}),
		logger.RequestLogger(),
		commonmw.SecurityHeaders(),
		commonmw.CORS(cfg.AllowedOrigins),
		commonmw.MetricsMiddleware(metrics, serviceName),
		commonmw.RequestLogger(log),
		commonmw.Timeout(requestTimeout),
		apperrors.ErrorMiddleware(log),
		middleware.Authenticate(tokens),
	)
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, apperrors.ErrNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, apperrors.ErrMethodNotAllowed)
	})

	routes.Register(r, h)
	return r
}

// newLogger tees logs to CloudWatch Logs when enabled and reachable.
func newLogger(ctx context.Context, cfg *config.Config, awsCfg sdkaws.Config, awsErr error) *zap.Logger {
	if !cfg.CloudWatchEnabled || awsErr != nil {
		return logger.Initialize(cfg.AppEnv)
	}

	cw, err := awspkg.NewCloudWatchLogsClient(ctx, awsCfg, cfg.CloudWatchLogGroup, serviceName)
	if err != nil {
		log := logger.Initialize(cfg.AppEnv)
		log.Warn("CloudWatch Logs unavailable, logging to stdout only", zap.Error(err))
		return log
	}
	return logger.InitializeWithWriter(cfg.AppEnv, cw)
}

func newPublisher(cfg *config.Config, awsCfg sdkaws.Config, awsErr error) (events.Publisher, error) {
	switch cfg.EventBackend {
	case "sns":
		if awsErr != nil {
			return nil, fmt.Errorf("EVENT_BACKEND=sns needs AWS config: %w", awsErr)
		}
		return events.NewSNSPublisher(awspkg.NewSNSClient(awsCfg), cfg.EventsSNSTopicARN), nil
	case "kafka":
		return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return events.NoopPublisher{}, nil
	}
}
