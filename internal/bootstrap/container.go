package bootstrap

import (
	"time"

	"ticket-intel-be/internal/config"
	"ticket-intel-be/internal/controller"
	"ticket-intel-be/internal/pkg/logger"
	"ticket-intel-be/internal/repository/memory"
	"ticket-intel-be/internal/service"
	"ticket-intel-be/pkg/gateway"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	TriageController controller.ITriageController

	// Background services (exposed for main.go to run)
	AuditService service.IAuditService

	// Session infrastructure (exposed for the server's session middleware)
	SessionRepository *memory.SessionRepository
	SessionTTL        time.Duration

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	sessionTTL := time.Duration(cfg.App.SessionTTLMinutes) * time.Minute
	sessionRepo := memory.NewSessionRepository(sessionTTL)

	gatewayClient := gateway.NewClient(gateway.Endpoints{
		UploadURL:   cfg.Gateway.UploadURL,
		ClassifyURL: cfg.Gateway.ClassifyURL,
		ApproveURL:  cfg.Gateway.ApproveURL,
		FeedbackURL: cfg.Gateway.FeedbackURL,
	})

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.DecisionTopic, pubSub)
	auditService := service.NewAuditService(pubSub, cfg.App.DecisionTopic, auditLogger)

	triageService := service.NewTriageService(
		gatewayClient,
		sessionRepo,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		TriageController:  controller.NewTriageController(triageService),
		AuditService:      auditService,
		SessionRepository: sessionRepo,
		SessionTTL:        sessionTTL,
		Logger:            sysLogger,
	}
}
