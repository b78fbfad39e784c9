package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pet-adoption-api/internal/adapters/auth/jwtauth"
	mem "pet-adoption-api/internal/adapters/storage/memory"
	pg "pet-adoption-api/internal/adapters/storage/postgres"
	"pet-adoption-api/internal/domain/adopters"
	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/identity"
	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/platform/metrics"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, mira DB_DSN y cae a in-memory.
	DB *sql.DB

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev-secret-change-in-production"
	}
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	m := metrics.New()
	r.Handle("/metrics", m.Handler())

	var (
		usersRepo    identity.Repository
		shelterRepo  shelters.Repository
		adopterRepo  adopters.Repository
		animalRepo   animals.Repository
		adoptionRepo adoptions.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres no disponible, usando memoria", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		usersRepo = pg.NewUsersRepo(db)
		shelterRepo = pg.NewSheltersRepo(db)
		adopterRepo = pg.NewAdoptersRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		adoptionRepo = pg.NewAdoptionsRepo(db)
	} else {
		usersRepo = mem.NewUsersRepo()
		shelterRepo = mem.NewSheltersRepo()
		adopterRepo = mem.NewAdoptersRepo()
		animalRepo = mem.NewAnimalsRepo()
		adoptionRepo = mem.NewAdoptionsRepo()
	}

	// Services por módulo
	sheltersSvc := shelters.NewService(shelterRepo)
	adoptersSvc := adopters.NewService(adopterRepo)
	animalsSvc := animals.NewService(animalRepo, sheltersSvc)
	adoptionsSvc := adoptions.NewService(adoptionRepo, adoptersSvc, animalsSvc)

	tokens := jwtauth.New(opts.JWTSecret, opts.JWTTTL)
	identitySvc := identity.NewService(usersRepo, sheltersSvc, adoptersSvc, tokens, opts.BcryptCost)

	// El gate resuelve la identidad viva en cada request: un token válido
	// de una identidad borrada no pasa.
	resolve := func(ctx context.Context, identityID string) (middleware.Principal, error) {
		u, err := identitySvc.Principal(ctx, identityID)
		if err != nil {
			return middleware.Principal{}, err
		}
		p := middleware.Principal{ID: u.ID, Role: string(u.Role)}
		if u.EntityID != nil {
			p.EntityID = *u.EntityID
		}
		return p, nil
	}

	requireAuth := middleware.RequireRoles(tokens, resolve, log)
	requireStaff := middleware.RequireRoles(tokens, resolve, log, string(identity.RoleShelter), string(identity.RoleAdmin))
	requireAdmin := middleware.RequireRoles(tokens, resolve, log, string(identity.RoleAdmin))

	// Rutas por módulo
	identity.RegisterRoutes(r, identitySvc, m, requireAuth)
	shelters.RegisterRoutes(r, sheltersSvc, requireAdmin)
	adopters.RegisterRoutes(r, adoptersSvc, requireAdmin)
	animals.RegisterRoutes(r, animalsSvc, requireStaff)
	adoptions.RegisterRoutes(r, adoptionsSvc, m, requireAdmin)

	return r
}
