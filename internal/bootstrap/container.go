package bootstrap

import (
	"context"
	"log"

	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/controller"
	"iomd-notebook-be/internal/pkg/logger"
	"iomd-notebook-be/internal/repository/unitofwork"
	"iomd-notebook-be/internal/service"
	pkgnats "iomd-notebook-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	NotebookController   controller.INotebookController
	FileController       controller.IFileController
	FileSourceController controller.IFileSourceController
	RenderController     controller.IRenderController

	// Background services (run by main)
	RefreshService service.IRefreshService

	// Shared infrastructure
	Redis  *redis.Client
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus carrying refresh requests
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS carries operation status events to external consumers; the
	// server keeps working without it.
	natsPub, err := pkgnats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis backs the CSRF token store
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	renderService, err := service.NewRenderService(cfg)
	if err != nil {
		return nil, err
	}

	publisherService := service.NewPublisherService(cfg.App.RefreshTopic, pubSub)
	fileService := service.NewFileService(uowFactory, cfg.Limits, sysLogger)
	fileSourceService := service.NewFileSourceService(uowFactory, publisherService, cfg.Limits)
	notebookService := service.NewNotebookService(
		uowFactory,
		fileService,
		fileSourceService,
		renderService,
		cfg,
		sysLogger,
	)
	refreshService := service.NewRefreshService(
		pubSub,
		cfg.App.RefreshTopic,
		uowFactory,
		natsPub,
		cfg.Limits.MaxFileSize,
		sysLogger,
	)

	return &Container{
		NotebookController:   controller.NewNotebookController(notebookService),
		FileController:       controller.NewFileController(fileService),
		FileSourceController: controller.NewFileSourceController(fileSourceService),
		RenderController:     controller.NewRenderController(renderService),

		RefreshService: refreshService,
		Redis:          rdb,
		Logger:         sysLogger,
	}, nil
}
