package routes

import (
	"context"
	"fmt"
	"log"

	"copiadora_xpto/internal/adapter/http/handlers"
	"copiadora_xpto/internal/adapter/http/middleware"
	"copiadora_xpto/internal/adapter/persistence/memory"
	"copiadora_xpto/internal/adapter/persistence/repository"
	"copiadora_xpto/internal/domain/lifecycle"
	"copiadora_xpto/internal/infrastructure/auth"
	"copiadora_xpto/internal/infrastructure/config"
	"copiadora_xpto/internal/infrastructure/database"
	"copiadora_xpto/internal/infrastructure/storage"
	"copiadora_xpto/internal/usecase"
	"copiadora_xpto/internal/usecase/interfaces"
)

// repositories groups the storage ports of one backend.
type repositories struct {
	services     interfaces.IServiceRepository
	steps        interfaces.IStepRepository
	images       interfaces.IImageRepository
	categories   interfaces.ICategoryRepository
	clients      interfaces.IClientRepository
	copyMachines interfaces.ICopyMachineRepository
	snapshots    interfaces.IDashboardStatsRepository
}

// App holds the wired handlers served by the router.
type App struct {
	Verifier  middleware.TokenVerifier
	Steps     *handlers.StepHandler
	Services  *handlers.ServiceHandler
	Category  *handlers.CategoryHandler
	Dashboard *handlers.DashboardHandler
}

func newRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	if cfg.StorageDriver == config.DriverMemory {
		log.Printf("[routes][wiring] using in-memory repositories")
		store := memory.New()
		return repositories{
			services:     store.Services(),
			steps:        store.Steps(),
			images:       store.Images(),
			categories:   store.Categories(),
			clients:      store.Clients(),
			copyMachines: store.CopyMachines(),
			snapshots:    store.DashboardStats(),
		}, nil
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		return repositories{}, err
	}
	log.Printf("[routes][wiring] using dynamodb region=%s endpoint=%q", cfg.AWSRegion, cfg.DynamoDBEndpoint)
	return repositories{
		services:     repository.NewServiceDynamoRepository(ddb, cfg.Tables),
		steps:        repository.NewStepDynamoRepository(ddb, cfg.Tables),
		images:       repository.NewImageDynamoRepository(ddb, cfg.Tables),
		categories:   repository.NewCategoryDynamoRepository(ddb, cfg.Tables),
		clients:      repository.NewClientDynamoRepository(ddb, cfg.Tables),
		copyMachines: repository.NewCopyMachineDynamoRepository(ddb, cfg.Tables),
		snapshots:    repository.NewDashboardStatsDynamoRepository(ddb, cfg.Tables),
	}, nil
}

func newImageStorage(ctx context.Context, cfg config.Config) (interfaces.IImageStorage, error) {
	if cfg.ImageStoreDriver == config.DriverMemory {
		log.Printf("[routes][wiring] using in-memory image storage")
		return storage.NewMemoryImageStore(), nil
	}
	store, err := storage.NewMinioImageStore(ctx, cfg.Minio)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}
	log.Printf("[routes][wiring] using minio endpoint=%s bucket=%s", cfg.Minio.Endpoint, cfg.Minio.Bucket)
	return store, nil
}

// NewApp wires repositories, use cases and handlers for cfg.
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	repos, err := newRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}
	images, err := newImageStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewJWTVerifier(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	return newApp(repos, images, verifier, cfg), nil
}

func newApp(repos repositories, images interfaces.IImageStorage, verifier middleware.TokenVerifier, cfg config.Config) *App {
	stepUseCase := usecase.NewStepUseCase(repos.steps, repos.services, repos.images, images, lifecycle.ResponsableOnly, cfg.Location)
	serviceUseCase := usecase.NewServiceUseCase(usecase.ServiceUseCaseDeps{
		Services:   repos.services,
		Steps:      repos.steps,
		Images:     repos.images,
		Storage:    images,
		Categories: repos.categories,
		Clients:    repos.clients,
		Machines:   repos.copyMachines,
	}, cfg.StatsMode, cfg.Location)
	categoryUseCase := usecase.NewCategoryUseCase(repos.categories, repos.steps, repos.services)
	dashboardUseCase := usecase.NewDashboardUseCase(repos.snapshots, serviceUseCase, repos.clients, cfg.Location)

	return &App{
		Verifier:  verifier,
		Steps:     handlers.NewStepHandler(stepUseCase),
		Services:  handlers.NewServiceHandler(serviceUseCase),
		Category:  handlers.NewCategoryHandler(categoryUseCase),
		Dashboard: handlers.NewDashboardHandler(dashboardUseCase),
	}
}
