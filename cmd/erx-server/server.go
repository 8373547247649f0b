package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/erx/erx/internal/config"
	"github.com/erx/erx/internal/domain/analysis"
	"github.com/erx/erx/internal/domain/diagnosis"
	"github.com/erx/erx/internal/domain/drug"
	"github.com/erx/erx/internal/domain/patient"
	"github.com/erx/erx/internal/domain/pharmacy"
	"github.com/erx/erx/internal/domain/prescription"
	"github.com/erx/erx/internal/platform/auth"
	"github.com/erx/erx/internal/platform/cache"
	"github.com/erx/erx/internal/platform/db"
	"github.com/erx/erx/internal/platform/middleware"
	"github.com/erx/erx/internal/platform/validate"
)

// app holds the wired services and their backing connections.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	pool   *pgxpool.Pool
	redis  *redis.Client

	matcher       *diagnosis.Matcher
	drugs         *drug.Service
	analysis      *analysis.Service
	patients      *patient.Service
	pharmacies    *pharmacy.Directory
	prescriptions *prescription.Service
}

// patientLookup adapts the patient service to the lookups the analysis and
// prescription services need.
type patientLookup struct{ svc *patient.Service }

func (l patientLookup) PatientContext(ctx context.Context, id string) (analysis.Patient, error) {
	p, err := l.svc.Get(ctx, id)
	if errors.Is(err, patient.ErrNotFound) {
		return analysis.Patient{}, fmt.Errorf("%w: %s", analysis.ErrUnknownPatient, id)
	}
	if err != nil {
		return analysis.Patient{}, err
	}
	return analysis.Patient{Age: p.Age, Allergies: p.Allergies}, nil
}

func (l patientLookup) PatientName(ctx context.Context, id string) (string, error) {
	p, err := l.svc.Get(ctx, id)
	if errors.Is(err, patient.ErrNotFound) {
		return "", fmt.Errorf("%w: %s", prescription.ErrUnknownPatient, id)
	}
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

func newDrugService() *drug.Service {
	return drug.NewService(drug.NewMemoryRepo())
}

func matchWeights(cfg *config.Config) diagnosis.Weights {
	return diagnosis.Weights{
		Keyword:     cfg.MatchKeywordWeight,
		Description: cfg.MatchDescriptionWeight,
		Code:        cfg.MatchCodeWeight,
		Limit:       cfg.MatchLimit,
	}
}

// newProducers builds the note producers. They wait PRODUCER_DELAY, apart
// from the analysis delay.
func newProducers(cfg *config.Config) (analysis.StubTranscriber, analysis.StubImageAnalyzer) {
	return analysis.StubTranscriber{Delay: cfg.ProducerDelay}, analysis.StubImageAnalyzer{Delay: cfg.ProducerDelay}
}

// newApp connects to PostgreSQL and Redis when they are configured and
// falls back to in-memory storage and no caching otherwise.
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	a.matcher = diagnosis.NewMatcher(matchWeights(cfg))
	a.drugs = newDrugService()

	a.analysis = analysis.NewService(a.matcher, a.drugs)
	a.analysis.SetLogger(logger.With().Str("component", "analysis").Logger())
	a.analysis.SetDelay(cfg.AnalysisDelay)
	a.analysis.SetProducers(newProducers(cfg))

	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.redis = client
		a.analysis.SetCache(analysis.NewRedisCache(client, cfg.AnalysisCacheTTL))
		logger.Info().Dur("ttl", cfg.AnalysisCacheTTL).Msg("analysis cache enabled")
	}

	if cfg.UsesDatabase() {
		pool, err := db.NewPool(ctx, db.PoolConfig{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns})
		if err != nil {
			a.close()
			return nil, err
		}
		a.pool = pool
		a.patients = patient.NewService(patient.NewRepoPG(pool))
		a.prescriptions = prescription.NewService(
			prescription.NewPrescriptionRepoPG(pool),
			prescription.NewRefillRepoPG(pool),
			db.NewTransactor(pool),
			a.drugs,
		)
		logger.Info().Msg("connected to database")
	} else {
		a.patients = patient.NewService(patient.NewMemoryRepo())
		store := prescription.NewMemoryStore()
		a.prescriptions = prescription.NewService(store.Prescriptions(), store.Refills(), store, a.drugs)
		if cfg.SeedDemoData {
			if err := a.patients.Seed(ctx); err != nil {
				a.close()
				return nil, err
			}
			if err := a.prescriptions.Seed(ctx); err != nil {
				a.close()
				return nil, err
			}
		}
		logger.Warn().Bool("seeded", cfg.SeedDemoData).Msg("DATABASE_URL not set, patients and prescriptions are kept in memory")
	}

	a.pharmacies = pharmacy.NewDirectory()
	lookup := patientLookup{a.patients}
	a.analysis.SetPatients(lookup)
	a.prescriptions.SetPatients(lookup)
	a.prescriptions.SetPharmacies(a.pharmacies)

	return a, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		a.redis.Close()
	}
}

type redisPinger struct{ client *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// routes builds the echo server with global middleware and every handler.
func (a *app) routes() *echo.Echo {
	cfg := a.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validate.New()

	// Global middleware
	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(a.logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader, auth.DevRoleHeader},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = cfg.RateLimitRPS
	rl.BurstSize = cfg.RateLimitBurst
	e.Use(middleware.RateLimit(rl))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if a.pool != nil {
		e.GET("/health/db", db.HealthHandler(a.pool))
	}
	if a.redis != nil {
		e.GET("/health/redis", db.HealthHandler(redisPinger{a.redis}))
	}

	var authMW echo.MiddlewareFunc
	if cfg.IsDev() {
		authMW = auth.DevAuthMiddleware()
	} else {
		authMW = auth.JWTMiddleware(jwtConfig(cfg))
	}
	api := e.Group("/api/v1", authMW)

	diagnosis.NewHandler(a.matcher).RegisterRoutes(api)
	drug.NewHandler(a.drugs).RegisterRoutes(api)
	analysis.NewHandler(a.analysis).RegisterRoutes(api)
	patient.NewHandler(a.patients).RegisterRoutes(api)
	pharmacy.NewHandler(a.pharmacies).RegisterRoutes(api)
	prescription.NewHandler(a.prescriptions).RegisterRoutes(api)

	return e
}

func runServer(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.IsDev() {
		logger.Warn().Msg("development mode: requests without a token act as admin, set X-Dev-Role to pick a role")
	}

	ctx := context.Background()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	e := a.routes()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
