package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"cupid-backend/internal/config"
	loveHandler "cupid-backend/internal/domains/love/handler"
	loveRepo "cupid-backend/internal/domains/love/repository"
	loveService "cupid-backend/internal/domains/love/service"
	"cupid-backend/internal/infrastructure/database"
	"cupid-backend/internal/infrastructure/storage"
)

// Container chứa TẤT CẢ dependencies của application.
// Pattern: explicit construction theo đúng thứ tự dependency graph:
// Config → Infrastructure (Mongo, Storage) → Repository → Service → Handler.
// Mọi component là singleton, sống trọn app lifetime.
type Container struct {
	Config  *config.Config
	DB      *database.MongoDB
	Storage storage.Backend

	LoveRepo    loveRepo.Repository
	LoveService loveService.Service
	LoveHandler *loveHandler.LoveHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
// Bất kỳ bước nào fail → application không start.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: CONNECT MONGODB
	// ========================================
	log.Println("🗄️  Connecting to MongoDB...")

	db := database.NewMongoDB(cfg.Mongo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	c.DB = db
	log.Println("✅ MongoDB connected")

	// ========================================
	// STEP 3: SELECT STORAGE BACKEND
	// ========================================
	// Driver được chọn một lần duy nhất lúc startup, không per-request
	backend, err := newStorageBackend(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage backend: %w", err)
	}
	c.Storage = backend
	log.Printf("✅ Storage backend ready (driver: %s)", cfg.Storage.Driver)

	// ========================================
	// STEP 4: REPOSITORY → SERVICE → HANDLER
	// ========================================
	c.LoveRepo = loveRepo.NewMongoRepository(db.Database)
	c.LoveService = loveService.NewLoveService(c.LoveRepo, c.Storage, cfg.Upload.StrictMediaType)
	c.LoveHandler = loveHandler.NewLoveHandler(c.LoveService, cfg.Upload)

	log.Println("✅ Container ready")
	return c, nil
}

func newStorageBackend(cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMinIO:
		return storage.NewMinIOStorage(cfg.Storage.MinIO, cfg.Upload.MaxFileSize)
	default:
		return storage.NewLocalStorage(cfg.Storage, cfg.Upload.MaxFileSize)
	}
}

// LocalStorageDir trả về thư mục uploads nếu driver = local
// (router cần để mount static serving), "" với driver khác.
func (c *Container) LocalStorageDir() string {
	if local, ok := c.Storage.(*storage.LocalStorage); ok {
		return local.Dir()
	}
	return ""
}

// Cleanup giải phóng resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")

	if c.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.DB.Close(ctx); err != nil {
			log.Printf("⚠️  Failed to close mongodb connection: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}
