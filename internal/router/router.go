package router

import (
	"net/http"
	"os"
	"time"

	"animal-shelter-manager/internal/adapters/auth/token"
	"animal-shelter-manager/internal/adapters/storage/memory"
	pg "animal-shelter-manager/internal/adapters/storage/postgres"
	"animal-shelter-manager/internal/adapters/storage/remote"
	"animal-shelter-manager/internal/adapters/storage/sqlite"
	"animal-shelter-manager/internal/domain/accounts"
	"animal-shelter-manager/internal/domain/adoptions"
	"animal-shelter-manager/internal/domain/animals"
	"animal-shelter-manager/internal/middleware"
	"animal-shelter-manager/internal/platform/logger"
	"animal-shelter-manager/internal/ports/auth"

	_ "animal-shelter-manager/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Store is everything the router needs from a storage backend.
type Store interface {
	adoptions.Store
	Users() accounts.Repository
}

type Options struct {
	// Nil verifier enables dev mode (debug headers).
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer

	// Optional explicit backend; when nil the env decides, falling back to
	// in-memory.
	Store Store

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	// AUTH_SECRET turns on signed tokens for both issuing and verifying,
	// unless the caller wired its own.
	if opts.Verifier == nil && opts.Issuer == nil {
		if secret := os.Getenv("AUTH_SECRET"); secret != "" {
			if ts, err := token.New(secret, token.DefaultTTL); err == nil {
				opts.Verifier = ts
				opts.Issuer = ts
			} else {
				log.Warn("auth secret rejected, staying in dev mode", map[string]any{"error": err.Error()})
			}
		}
	}

	store := opts.Store
	if store == nil {
		store = storeFromEnv(log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	animalsSvc := animals.NewService(store.Animals())
	adoptionsSvc := adoptions.NewService(store, log)
	accountsSvc := accounts.NewService(store.Users(), opts.Issuer)

	// Both modules hang routes off /animals; registering them inside one
	// Route call keeps chi from seeing conflicting subtrees.
	r.Route("/animals", func(ar chi.Router) {
		animals.RegisterRoutes(ar, animalsSvc)
		adoptions.RegisterAnimalRoutes(ar, adoptionsSvc)
	})

	adoptions.RegisterRoutes(r, adoptionsSvc)
	accounts.RegisterRoutes(r, accountsSvc)

	return r
}

func storeFromEnv(log logger.Logger) Store {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err == nil {
			log.Info("using postgres backend", nil)
			return pg.NewStore(db)
		}
		log.Warn("postgres unavailable, falling back", map[string]any{"error": err.Error()})
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		db, err := sqlite.Open(path)
		if err == nil {
			log.Info("using sqlite backend", map[string]any{"path": path})
			return sqlite.NewStore(db)
		}
		log.Warn("sqlite unavailable, falling back", map[string]any{"error": err.Error()})
	}

	if base := os.Getenv("RECORD_STORE_URL"); base != "" {
		st, err := remote.New(base, 10*time.Second)
		if err == nil {
			log.Info("using remote record store", map[string]any{"url": base})
			return st
		}
		log.Warn("record store url rejected, falling back", map[string]any{"error": err.Error()})
	}

	log.Info("using in-memory backend", nil)
	return memory.New()
}
