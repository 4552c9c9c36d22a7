package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/contable-api/internal/application/analytics"
	"github.com/jhoicas/contable-api/internal/application/assignment"
	"github.com/jhoicas/contable-api/internal/application/auth"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/application/usecase"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/contable-api/internal/infrastructure/pdf"
	"github.com/jhoicas/contable-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/contable-api/internal/interfaces/http"
	"github.com/jhoicas/contable-api/pkg/config"
	"github.com/jhoicas/contable-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// stores puertos de persistencia resueltos según STORE_DRIVER.
type stores struct {
	clients     repository.ClientRepository
	quotations  repository.QuotationRepository
	users       repository.UserRepository
	assignments repository.AssignmentRepository
	dashboard   repository.DashboardRepository
	tx          repository.TxRunner
	close       func()
}

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
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de datos")
	}
	defer st.close()

	sc := scope.NewScopeService(st.clients, st.quotations, st.users, st.assignments)
	manager := assignment.NewManager(st.users, st.clients, st.assignments, st.tx, log)

	clientUC := usecase.NewClientUseCase(sc, st.clients, log)
	quotationUC := usecase.NewQuotationUseCase(sc, st.quotations, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), log)
	userUC := usecase.NewUserUseCase(sc, st.users, st.clients, manager, log)
	dashboardUC := appanalytics.NewDashboardUseCase(sc, st.clients, st.users, st.dashboard)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.NewRevocations(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Contable API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		QuotationUC: quotationUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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

// openStores conecta PostgreSQL (con migración opcional) o arma el almacén en memoria.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		m := memory.NewStore()
		seed := auth.AdminSeed{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword, Name: cfg.Seed.AdminName}
		if _, err := auth.EnsureAdmin(ctx, m.Users(), seed); err != nil {
			return nil, fmt.Errorf("administrador inicial del almacén en memoria: %w", err)
		}
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado")
		return &stores{
			clients:     m.Clients(),
			quotations:  m.Quotations(),
			users:       m.Users(),
			assignments: m.Assignments(),
			dashboard:   m.Dashboard(),
			tx:          m.TxRunner(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	pg := postgres.NewStore(pool, cfg.DB.QueryTimeout)
	return &stores{
		clients:     pg.Clients(),
		quotations:  pg.Quotations(),
		users:       pg.Users(),
		assignments: pg.Assignments(),
		dashboard:   pg.Dashboard(),
		tx:          pg.TxRunner(),
		close:       pool.Close,
	}, nil
}
