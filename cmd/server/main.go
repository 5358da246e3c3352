package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"suburbia-skate.backend/internal/config"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
	"suburbia-skate.backend/internal/infrastructure/custody"
	"suburbia-skate.backend/internal/infrastructure/identity"
	"suburbia-skate.backend/internal/infrastructure/jobs"
	"suburbia-skate.backend/internal/infrastructure/repositories"
	"suburbia-skate.backend/internal/infrastructure/storage"
	"suburbia-skate.backend/internal/interfaces/http/handlers"
	"suburbia-skate.backend/internal/interfaces/http/middleware"
	"suburbia-skate.backend/internal/usecases"
	"suburbia-skate.backend/pkg/crypto"
	"suburbia-skate.backend/pkg/jwt"
	"suburbia-skate.backend/pkg/logger"
	"suburbia-skate.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessExpiry,
		cfg.Auth.RefreshExpiry,
	)

	sessionStore, err := newSessionStore(cfg.Auth.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	boardRepo := repositories.NewBoardRepository(db)
	mintRepo := repositories.NewMintRecordRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Infrastructure
	chain := blockchain.NewRPCClient(cfg.Solana.RPCURL, cfg.Solana.ConfirmTimeout)

	sealer, err := crypto.NewKeySealer(cfg.Custody.KeystoreSecret)
	if err != nil {
		return fmt.Errorf("failed to initialize key sealer: %w", err)
	}
	custodian := custody.NewCustodian(walletRepo, sealer)

	store, err := newContentStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize content store: %w", err)
	}

	verifier := identity.NewVerifier(cfg.Auth.ProviderIssuer, cfg.Auth.ProviderJWKSURL)

	// Usecases
	funding := usecases.NewFundingUsecase(chain, custodian, cfg.Solana.AirdropLamports, cfg.Solana.AirdropAttempts)
	profiles := usecases.NewProfileUsecase(userRepo, boardRepo, custodian, funding, chain)
	authUsecase := usecases.NewAuthUsecase(verifier, profiles, jwtService, sessionStore, cfg.Auth.RefreshExpiry)
	boardsUsecase := usecases.NewBoardUsecase(boardRepo, userRepo)
	uploader := usecases.NewAssetUploader(store)
	mintUsecase := usecases.NewMintUsecase(
		usecases.NewCaptureValidator(),
		uploader,
		chain,
		custodian,
		funding,
		mintRepo,
		boardRepo,
		userRepo,
		uow,
		cfg.Solana.Cluster,
		cfg.Solana.MintAttempts,
		cfg.Solana.MintBackoffBase,
	)
	walletUsecase := usecases.NewWalletUsecase(chain, custodian, cfg.Solana.Cluster)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	profileHandler := handlers.NewProfileHandler(profiles)
	boardHandler := handlers.NewBoardHandler(boardsUsecase)
	mintHandler := handlers.NewMintHandler(mintUsecase)
	walletHandler := handlers.NewWalletHandler(funding, walletUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, sessionStore)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reconciler := jobs.NewMintReconciler(mintRepo, chain, mintUsecase)
	if err := reconciler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start mint reconciler: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		boardHandler:   boardHandler,
		mintHandler:    mintHandler,
		walletHandler:  walletHandler,
		authMiddleware: authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		reconciler.Stop()
		cancel()
	}()

	log.Printf("🚀 Suburbia Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func newContentStore(ctx context.Context, cfg *config.Config) (storage.ContentStore, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3Store(
			ctx,
			cfg.Storage.S3.Endpoint,
			cfg.Storage.S3.Region,
			cfg.Storage.S3.AccessKeyID,
			cfg.Storage.S3.AccessKeySecret,
			cfg.Storage.S3.Bucket,
			cfg.Storage.S3.CDNBaseURL,
		)
	case "github":
		return storage.NewGitHubStore(
			ctx,
			cfg.Storage.GitHub.Owner,
			cfg.Storage.GitHub.Repo,
			cfg.Storage.GitHub.Branch,
			cfg.Storage.GitHub.Token,
		), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
