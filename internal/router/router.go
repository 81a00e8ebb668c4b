package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "patient-summary/docs"
	mem "patient-summary/internal/adapters/storage/memory"
	pg "patient-summary/internal/adapters/storage/postgres"
	"patient-summary/internal/domain/accesslog"
	"patient-summary/internal/domain/encounters"
	"patient-summary/internal/domain/patients"
	"patient-summary/internal/domain/summary"
	"patient-summary/internal/extension"
	"patient-summary/internal/middleware"
	"patient-summary/internal/platform/logger"
	"patient-summary/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Backend es todo lo que el servicio consume del backend clínico.
// openmrs.Client lo implementa.
type Backend interface {
	FetchConditions(ctx context.Context, patientUUID string) ([]summary.ConditionRecord, error)
	FetchMedications(ctx context.Context, patientUUID string) ([]summary.MedicationRecord, error)
	FetchHistory(ctx context.Context, patientUUID string) ([]summary.HistoryRecord, error)

	encounters.Gateway
	patients.Gateway
}

type Options struct {
	Backend Backend
	Logger  logger.Logger // nil => Nop

	// Opcional: si viene, el access log va a Postgres (ya migrado). Si no, in-memory.
	DB *sql.DB

	DefaultPageSize           int
	WidgetIdleTimeout         time.Duration
	FollowupEncounterTypeUUID string
	EncounterRepresentation   string // solo se publica en el manifest
}

// App es el handler HTTP más lo que hay que cerrar en el shutdown.
type App struct {
	Handler  http.Handler
	Summary  *summary.Service
	Manifest extension.Manifest
}

// Close desmonta los widgets (cancela cargas en vuelo).
func (a *App) Close() {
	a.Summary.Close()
}

// Widgets arma las definiciones de los tres widgets sobre el backend.
func Widgets(b Backend) []summary.Definition {
	return []summary.Definition{
		summary.ConditionsWidget(b.FetchConditions),
		summary.MedicationsWidget(b.FetchMedications),
		summary.HistoryWidget(b.FetchHistory),
	}
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware)

	r.Use(middleware.ForwardCredentials)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var logRepo accesslog.Repository
	if opts.DB != nil {
		logRepo = pg.NewAccessLogRepo(opts.DB)
	} else {
		logRepo = mem.NewAccessLogRepo(0)
	}

	// Services por módulo
	logSvc := accesslog.NewService(logRepo, log.With(map[string]any{"module": "accesslog"}))
	defs := Widgets(opts.Backend)
	summarySvc := summary.NewService(summary.Options{
		Definitions:     defs,
		Logger:          log.With(map[string]any{"module": "summary"}),
		Observer:        logSvc,
		DefaultPageSize: opts.DefaultPageSize,
		IdleTimeout:     opts.WidgetIdleTimeout,
	})
	encSvc := encounters.NewService(opts.Backend, opts.FollowupEncounterTypeUUID)
	patientsSvc := patients.NewService(opts.Backend)

	manifest := extension.Build(defs, extension.Settings{
		DefaultPageSize:           opts.DefaultPageSize,
		EncounterRepresentation:   opts.EncounterRepresentation,
		FollowupEncounterTypeUUID: opts.FollowupEncounterTypeUUID,
	})

	// Rutas por módulo
	extension.RegisterRoutes(r, manifest)
	summary.RegisterRoutes(r, summarySvc)
	patients.RegisterRoutes(r, patientsSvc)
	encounters.RegisterRoutes(r, encSvc)
	accesslog.RegisterRoutes(r, logSvc)

	return &App{
		Handler:  r,
		Summary:  summarySvc,
		Manifest: manifest,
	}
}
