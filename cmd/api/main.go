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
	_ "github.com/jhoicas/ne-taxonomy/docs"
	"github.com/jhoicas/ne-taxonomy/internal/application/auth"
	"github.com/jhoicas/ne-taxonomy/internal/application/ports"
	"github.com/jhoicas/ne-taxonomy/internal/application/usecase"
	"github.com/jhoicas/ne-taxonomy/internal/domain/repository"
	"github.com/jhoicas/ne-taxonomy/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ne-taxonomy/internal/infrastructure/pdf"
	"github.com/jhoicas/ne-taxonomy/internal/infrastructure/postgres"
	"github.com/jhoicas/ne-taxonomy/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/ne-taxonomy/internal/infrastructure/xmldoc"
	httpRouter "github.com/jhoicas/ne-taxonomy/internal/interfaces/http"
	"github.com/jhoicas/ne-taxonomy/pkg/config"
	"github.com/jhoicas/ne-taxonomy/pkg/logger"
	"github.com/jhoicas/ne-taxonomy/pkg/netype"
)

// @title       NE Taxonomy API
// @version     1.0
// @description Taxonomía de tipos de entidades nombradas y etiquetas de seudonimización.
// @BasePath    /
// @securityDefinitions.apikey Bearer
// @in          header
// @name        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Int("ne_types", netype.Default().Len()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	neTypeUC := usecase.NewNETypeUseCase(
		netype.Default(),
		infrapdf.NewMarotoPDFGenerator(""),
		xmldoc.NewXMLBuilderService(),
	)
	labelUC := usecase.NewLabelUseCase(store.labels, store.tx)
	authUC := auth.NewAuthUseCase(store.accounts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear cuenta administradora")
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("cuenta administradora creada")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NE Taxonomy API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		NETypeUC:  neTypeUC,
		LabelUC:   labelUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
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

type storage struct {
	labels   repository.LabelRepository
	accounts repository.AccountRepository
	tx       ports.LabelTxRunner
	close    func()
}

// openStorage arma los repositorios según STORAGE_DRIVER. Con postgres aplica
// las migraciones embebidas antes de devolver.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		labels := memory.NewLabelRepository()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			labels:   labels,
			accounts: memory.NewAccountRepository(),
			tx:       memory.NewTxRunner(labels),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := postgres.ApplyMigrations(ctx, pool, migrations.FS)
	if err != nil {
		pool.Close()
		return nil, err
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}
	return &storage{
		labels:   postgres.NewLabelRepository(pool),
		accounts: postgres.NewAccountRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
