package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/intelfusion/case-similarity-api/api"
	"github.com/intelfusion/case-similarity-api/api/scheduler"
	"github.com/intelfusion/case-similarity-api/caselock"
	"github.com/intelfusion/case-similarity-api/config"
	"github.com/intelfusion/case-similarity-api/databases"
	"github.com/intelfusion/case-similarity-api/embeddings"
	"github.com/intelfusion/case-similarity-api/metrics"
	"github.com/intelfusion/case-similarity-api/similarity"
	"github.com/intelfusion/case-similarity-api/titles"
)

// lockTTL bounds how long a crashed worker can hold the merge lock
const lockTTL = 2 * time.Minute

// App stores the router and collaborator connections, so it can be reused
type App struct {
	Router    *mux.Router
	Config    *config.Config
	Scheduler *scheduler.Scheduler

	dbHelper  databases.DatabaseHelper
	cases     databases.CaseDatabase
	settings  databases.SettingsDatabase
	processor CaseProcessor
	embedder  similarity.Embedder
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware)

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	auth := api.Middleware(a.Config.AuthSecret)
	if a.Config.AuthSecret == "" {
		zap.S().Warn("AUTH_SECRET is not set, the api is running unauthenticated")
		auth = func(next http.Handler) http.Handler { return next }
	}

	p := Process{Processor: a.processor, SDB: a.settings, Config: a.Config}
	s := Search{CDB: a.cases, Embeddings: a.embedder}
	report := Report{CDB: a.cases}
	settings := Settings{SDB: a.settings, Config: a.Config}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(90 * time.Second))

	apiCreate.Handle("/process-case", auth(http.HandlerFunc(p.ProcessCaseHandler))).Methods("POST")
	apiCreate.Handle("/process-case-async", auth(http.HandlerFunc(p.ProcessCaseAsyncHandler))).Methods("POST")
	apiCreate.Handle("/find-similar", auth(http.HandlerFunc(s.FindSimilarHandler))).Methods("GET")
	apiCreate.Handle("/report/latest", auth(http.HandlerFunc(report.LatestReportHandler))).Methods("POST")
	apiCreate.Handle("/settings/{report_type}", auth(http.HandlerFunc(settings.GetSettingsHandler))).Methods("GET")
	apiCreate.Handle("/settings/{report_type}", auth(http.HandlerFunc(settings.UpsertSettingsHandler))).Methods("PUT")
	apiCreate.Handle("/settings/{report_type}", auth(http.HandlerFunc(settings.DeleteSettingsHandler))).Methods("DELETE")

	return r
}

// Initialize is invoked by main to connect with the databases and create a router
func (a *App) Initialize() error {
	metrics.Register()

	client, err := databases.NewClient(a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("case-similarity-api has connected to the settings database")

	store, err := databases.NewVectorStore(a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to connect to the similarity store")
		return err
	}
	a.cases = databases.NewCaseDatabase(store)
	a.settings = databases.NewSettingsDatabase(a.dbHelper)

	a.embedder = embeddings.NewClient(a.Config.EmbeddingsBaseURL)
	titleClient := titles.NewClient(a.Config.TitlesBaseURL, a.Config.TitlesAPIKey, a.Config.TitlesModel)

	var locker caselock.Locker = caselock.Noop{}
	if a.Config.RedisAddr != "" {
		locker = caselock.New(redis.NewClient(&redis.Options{
			Addr:     a.Config.RedisAddr,
			Password: a.Config.RedisPassword,
			DB:       a.Config.RedisDB,
		}), lockTTL)
	} else {
		zap.S().Warn("REDIS_ADDR is not set, merge decisions are not serialized across instances")
	}

	location, err := time.LoadLocation(a.Config.Timezone)
	if err != nil {
		zap.S().Warnw("unknown timezone, falling back to UTC", "timezone", a.Config.Timezone)
		location = time.UTC
	}

	a.processor = &similarity.Processor{
		Cases:      a.cases,
		Embeddings: a.embedder,
		Titles:     titleClient,
		Lock:       locker,
		Policy:     similarity.Policy{MinScoreMargin: a.Config.MinScoreMargin},
		Location:   location,
	}

	a.Scheduler = scheduler.NewScheduler(a.cases, titleClient)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
