package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"crewsite/internal/domain/access"
	"crewsite/internal/domain/auth"
	"crewsite/internal/domain/core"
	"crewsite/internal/domain/dispatch"
	"crewsite/internal/domain/invoice"
	"crewsite/internal/domain/sitereport"
	"crewsite/internal/domain/timetracking"
	"crewsite/internal/platform/config"
	"crewsite/internal/platform/db"
	accesshandler "crewsite/internal/transport/http/handlers/access"
	authhandler "crewsite/internal/transport/http/handlers/auth"
	corehandler "crewsite/internal/transport/http/handlers/core"
	dispatchhandler "crewsite/internal/transport/http/handlers/dispatch"
	invoicehandler "crewsite/internal/transport/http/handlers/invoice"
	payperiodhandler "crewsite/internal/transport/http/handlers/payperiod"
	sitereporthandler "crewsite/internal/transport/http/handlers/sitereport"
	timetrackinghandler "crewsite/internal/transport/http/handlers/timetracking"
	"crewsite/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	coreStore := core.NewStore(pool)
	accessStore := access.NewStore(pool)
	accessService := access.NewService(accessStore)
	timeStore := timetracking.NewStore(pool)
	dispatchStore := dispatch.NewStore(pool)
	reportStore := sitereport.NewStore(pool)
	invoiceStore := invoice.NewStore(pool)

	secureMW := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IsDevelopment:      cfg.Environment == "development",
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(secureMW.Handler)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		// Credential endpoints get a tighter limit than the general API.
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			authHandler := authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL)
			authHandler.RegisterRoutes(r)
		})

		accesshandler.NewHandler(accessStore, accessService).RegisterRoutes(r)
		corehandler.NewHandler(coreStore, accessService).RegisterRoutes(r)
		timetrackinghandler.NewHandler(timeStore, coreStore, accessService).RegisterRoutes(r)
		dispatchhandler.NewHandler(dispatchStore, accessService).RegisterRoutes(r)
		sitereporthandler.NewHandler(reportStore, coreStore, accessService).RegisterRoutes(r)
		invoicehandler.NewHandler(invoiceStore, accessService).RegisterRoutes(r)
		payperiodhandler.NewHandler(coreStore, accessService).RegisterRoutes(r)
	})

	// Field-only roles land on the field view instead of the dashboard.
	router.With(middleware.FieldRedirect(accessService, "/field")).
		Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("crewsite server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
