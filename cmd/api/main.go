package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/http"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/middleware"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/repository/mysql"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/adapter/repository/redisstore"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/config"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/application"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/domain/notify"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/infrastructure/artifact"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/infrastructure/cache"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/infrastructure/db"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/infrastructure/mail"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/auth"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/certificate"
	dlusecase "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/download"
	otpengine "github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/otp"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/registry"
	"github.com/yashturmbekar/PMCRMS-sub005/internal/usecase/workflow"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		logger.Fatal("mysql connect failed", zap.Error(err))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		logger.Fatal("redis connect failed", zap.Error(err))
	}

	var sender notify.Sender
	if cfg.SMTPHost != "" {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		})
	} else {
		sender = mail.NewLogSender(logger)
	}

	docStore, err := artifact.NewFSStore(cfg.ArtifactDir)
	if err != nil {
		logger.Fatal("artifact store init failed", zap.Error(err))
	}

	// repositories
	uow := mysql.NewGormUoW(gdb)
	challenges := mysql.NewChallengeRepository(gdb)
	officers := mysql.NewOfficerRepository(gdb)
	auditRepo := mysql.NewAuditRepository(gdb)
	tokens := redisstore.NewTokenStore(rdb)

	// usecases
	engine := otpengine.NewEngine(challenges, uow, sender, logger,
		time.Duration(cfg.OTPTTLSecs)*time.Second,
		otpengine.WithDebugEcho(cfg.DebugOTPEcho),
	)
	authUC := auth.NewUsecase(officers, engine, logger, cfg.JWTSecret, time.Duration(cfg.JWTExpiryMins)*time.Minute)
	issuer := certificate.NewIssuer(uow, artifact.NewStubRenderer(), docStore, logger)
	registryUC := registry.NewUsecase(uow, officers, issuer, logger)
	downloadUC := dlusecase.NewUsecase(uow, engine, tokens, docStore, auditRepo, logger,
		time.Duration(cfg.DownloadTTLSec)*time.Second)

	coordinators := make([]*workflow.Coordinator, 0, len(application.Stages))
	for _, stageCfg := range application.Stages {
		coordinators = append(coordinators, workflow.NewCoordinator(stageCfg, uow, engine, officers, logger))
	}

	// handlers
	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	registryH := httpadp.NewRegistryHandler(registryUC)
	workflowH := httpadp.NewWorkflowHandler(coordinators)
	downloadH := httpadp.NewDownloadHandler(downloadUC)

	officerAuth := middleware.NewOfficerAuth(cfg.JWTSecret, logger)
	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/api")

	// public
	api.POST("/auth/login/request", authH.RequestLogin)
	api.POST("/auth/login/verify", authH.VerifyLogin)
	api.POST("/applications", registryH.Submit)
	api.GET("/applications/:application_number/status", registryH.GetStatus)
	api.POST("/documents/access/request", downloadH.RequestAccess)
	api.POST("/documents/access/verify", downloadH.VerifyOTP)
	api.GET("/documents/:token/:kind", downloadH.GetArtifact)

	// officer review stages
	wf := api.Group("/workflow/:stage", officerAuth.Handle(), idemp)
	wf.GET("/pending", workflowH.ListPending)
	wf.GET("/completed", workflowH.ListCompleted)
	wf.POST("/:application_number/otp", workflowH.GenerateOTP)
	wf.POST("/:application_number/sign", workflowH.Sign)
	wf.POST("/:application_number/reject", workflowH.Reject)

	// clerk operations
	admin := api.Group("/applications/:application_number", officerAuth.Handle(), idemp)
	admin.POST("/assign", registryH.Assign)
	admin.POST("/clerk-complete", registryH.CompleteClerkProcessing)
	admin.POST("/payment-complete", registryH.CompletePayment)

	addr := ":" + cfg.AppPort
	logger.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
