// seed prepara una base nueva: aplica el esquema, crea el primer Administrador
// (SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD) e importa clientes desde un CSV.
//
// Uso: go run ./cmd/seed [--migrate] [--clients clientes.csv] [--latin1]
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	"github.com/jhoicas/contable-api/internal/application/auth"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/contable-api/pkg/config"
	"github.com/jhoicas/contable-api/pkg/logger"
)

func main() {
	migrate := flag.Bool("migrate", false, "aplicar el esquema antes de sembrar")
	clientsPath := flag.String("clients", "", "CSV de clientes a importar")
	latin1 := flag.Bool("latin1", false, "el CSV está codificado en ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if *migrate || cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	store := postgres.NewStore(pool, cfg.DB.QueryTimeout)
	created, err := auth.EnsureAdmin(ctx, store.Users(), adminSeed(cfg.Seed))
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("email", cfg.Seed.AdminEmail).Bool("created", created).Msg("administrador listo")

	if *clientsPath == "" {
		return
	}
	f, err := os.Open(*clientsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV de clientes")
	}
	defer f.Close()

	list, skipped, err := parseClientsCSV(f, *latin1)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV de clientes")
	}
	for _, s := range skipped {
		log.Warn().Int("line", s.Line).Str("reason", s.Reason).Msg("fila descartada")
	}
	created, err := importClients(ctx, store.Clients(), list)
	if err != nil {
		log.Fatal().Err(err).Int("created", created).Msg("importar clientes")
	}
	log.Info().Int("created", created).Int("read", len(list)).Int("skipped", len(skipped)).Msg("clientes importados")
}

// importClients crea los clientes cuyo RUC todavía no existe. Devuelve cuántos creó.
func importClients(ctx context.Context, clients repository.ClientRepository, list []*entity.Client) (int, error) {
	existing, err := clients.List(ctx, repository.ClientFilter{})
	if err != nil {
		return 0, err
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.RUC] = true
	}
	created := 0
	now := time.Now().UTC().Truncate(time.Microsecond)
	for _, c := range list {
		if seen[c.RUC] {
			continue
		}
		c.ID = uuid.New().String()
		c.CreatedAt, c.UpdatedAt = now, now
		if err := clients.Create(ctx, c); err != nil {
			return created, err
		}
		seen[c.RUC] = true
		created++
	}
	return created, nil
}

func adminSeed(s config.SeedConfig) auth.AdminSeed {
	return auth.AdminSeed{Email: s.AdminEmail, Password: s.AdminPassword, Name: s.AdminName}
}
