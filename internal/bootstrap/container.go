package bootstrap

import (
	"log"

	"github.com/af-Athameem/gtruth/internal/config"
	"github.com/af-Athameem/gtruth/internal/controller"
	"github.com/af-Athameem/gtruth/internal/pkg/logger"
	"github.com/af-Athameem/gtruth/internal/pkg/serverutils"
	"github.com/af-Athameem/gtruth/internal/repository/implementation"
	"github.com/af-Athameem/gtruth/internal/repository/memory"
	"github.com/af-Athameem/gtruth/internal/service"
	"github.com/af-Athameem/gtruth/pkg/blobstore"
	"github.com/af-Athameem/gtruth/pkg/form"
	"github.com/af-Athameem/gtruth/pkg/graph"

	"github.com/gofiber/fiber/v2"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	FormController     controller.IFormController
	QuestionController controller.IQuestionController
	FileController     controller.IFileController

	// Session middleware guarding every authenticated route
	SessionMiddleware fiber.Handler

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	blobs, err := blobstore.NewS3Store(blobstore.Options{
		Endpoint:   cfg.S3.Endpoint,
		AccessKey:  cfg.S3.AccessKey,
		SecretKey:  cfg.S3.SecretKey,
		Region:     cfg.S3.Region,
		Bucket:     cfg.S3.Bucket,
		UseSSL:     cfg.S3.UseSSL,
		JSONPrefix: cfg.S3.JSONPrefix,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object store client: %v", err)
	}

	gateway := graph.NewClient(graph.Config{
		TenantID:     cfg.Graph.TenantID,
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		SiteHost:     cfg.Graph.SiteHost,
		SitePath:     cfg.Graph.SitePath,
		FolderName:   cfg.Graph.FolderName,
	})

	// 2. In-Memory State
	sessionRepo := memory.NewSessionRepository(cfg.Auth.SessionTimeout)
	attemptRepo := memory.NewAttemptRepository(cfg.Auth.RateLimitWindow, cfg.Auth.RateLimitMax)
	formManager := form.NewManager()

	// 3. Repositories
	userRepo := implementation.NewUserRepository(blobs, sysLogger)
	questionRepo := implementation.NewQuestionRepository(blobs, sysLogger)

	// 4. Services
	catalogService := service.NewCatalogService(blobs, gateway, sysLogger)
	authService := service.NewAuthService(userRepo, sessionRepo, attemptRepo, gateway, formManager, sysLogger, cfg.Auth.JWTSecret)
	questionService := service.NewQuestionService(questionRepo, catalogService, formManager, sysLogger)
	fileService := service.NewFileService(blobs, gateway, catalogService, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		FormController:     controller.NewFormController(formManager),
		QuestionController: controller.NewQuestionController(questionService),
		FileController:     controller.NewFileController(catalogService, fileService),
		SessionMiddleware:  serverutils.SessionMiddleware(cfg.Auth.JWTSecret, sessionRepo, cfg.Auth.SessionTimeout),
		Logger:             sysLogger,
	}
}
