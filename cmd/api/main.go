package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/categories-api/docs"
	"github.com/jhoicas/categories-api/internal/application/auth"
	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain/repository"
	infracache "github.com/jhoicas/categories-api/internal/infrastructure/cache"
	infraevents "github.com/jhoicas/categories-api/internal/infrastructure/events"
	"github.com/jhoicas/categories-api/internal/infrastructure/memory"
	inframongo "github.com/jhoicas/categories-api/internal/infrastructure/mongo"
	infrapdf "github.com/jhoicas/categories-api/internal/infrastructure/pdf"
	"github.com/jhoicas/categories-api/internal/infrastructure/postgres"
	"github.com/jhoicas/categories-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/categories-api/internal/interfaces/http"
	"github.com/jhoicas/categories-api/pkg/config"
	"github.com/jhoicas/categories-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// imageStore guarda y sirve imágenes (disco local o MinIO).
type imageStore interface {
	category.ImageStorage
	httpRouter.ObjectOpener
}

// @title						Categories API
// @version					1.0
// @description				API de administración de categorías y subcategorías.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("uploads", cfg.Uploads.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	repo, closeRepo := newCategoryRepository(ctx, cfg, log)
	closers = append(closers, closeRepo)

	images := newImageStore(ctx, cfg, log)

	opts := []category.Option{
		category.WithCatalogRenderer(infrapdf.NewMarotoCatalogGenerator("")),
	}

	// Caché de listados (opcional)
	if cfg.Redis.Enabled() {
		rdb, err := infracache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			opts = append(opts, category.WithCache(infracache.NewListCache(rdb, cfg.Redis.ListTTL, log)))
		}
	}

	// Eventos de cambio (opcional)
	if cfg.Kafka.Enabled() {
		producer := infraevents.NewProducer(cfg.Kafka, log)
		closers = append(closers, func() {
			if err := producer.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor kafka")
			}
		})
		opts = append(opts, category.WithEvents(producer))
	}

	categoryUC := category.NewUseCase(repo, images, log, opts...)

	var authUC *auth.AuthUseCase
	if cfg.JWT.Secret != "" {
		authUC = auth.NewAuthUseCase(
			auth.Admin{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash},
			auth.JWTConfig{
				Secret:     cfg.JWT.Secret,
				ExpMinutes: cfg.JWT.Expiration,
				Issuer:     cfg.JWT.Issuer,
			},
		)
	} else {
		log.Warn().Msg("JWT_SECRET vacío: rutas de escritura sin autenticación")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Categories API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:     categoryUC,
		AuthUC:         authUC,
		Uploads:        images,
		JWTSecret:      cfg.JWT.Secret,
		MaxImageBytes:  int64(cfg.Uploads.MaxSizeMB) * 1024 * 1024,
		DebugEndpoints: cfg.Debug.Endpoints,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newCategoryRepository conecta el almacén elegido por STORE_DRIVER.
func newCategoryRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.CategoryRepository, func()) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		if cfg.DB.RunMigrations {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
				log.Fatal().Err(err).Msg("migraciones PostgreSQL")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		return postgres.NewCategoryRepository(pool, cfg.DB.DBName), pool.Close

	case config.StoreMongo:
		client, err := inframongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a MongoDB")
		}
		repo := inframongo.NewCategoryRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection)
		idxCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		defer cancel()
		if err := repo.EnsureIndexes(idxCtx); err != nil {
			log.Fatal().Err(err).Msg("índices de MongoDB")
		}
		return repo, func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}

	default:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return memory.NewCategoryRepository(), func() {}
	}
}

// newImageStore crea el almacenamiento de imágenes elegido por UPLOADS_DRIVER.
func newImageStore(ctx context.Context, cfg *config.Config, log *logger.Logger) imageStore {
	maxSize := int64(cfg.Uploads.MaxSizeMB) * 1024 * 1024

	if cfg.Uploads.Driver == config.UploadsMinio {
		mc, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente MinIO")
		}
		if err := storage.EnsureBucket(ctx, mc, cfg.Minio.Bucket); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Minio.Bucket).Msg("bucket MinIO")
		}
		return storage.NewMinio(mc, cfg.Minio.Bucket, maxSize)
	}

	local, err := storage.NewLocal(cfg.Uploads.Dir, maxSize)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Uploads.Dir).Msg("directorio de imágenes")
	}
	return local
}
