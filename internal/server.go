package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rolltrack/rolltrack/internal/auth"
	"github.com/rolltrack/rolltrack/internal/config"
	"github.com/rolltrack/rolltrack/internal/db"
	"github.com/rolltrack/rolltrack/internal/events"
	"github.com/rolltrack/rolltrack/internal/gyms"
	"github.com/rolltrack/rolltrack/internal/insights"
	"github.com/rolltrack/rolltrack/internal/middleware"
	"github.com/rolltrack/rolltrack/internal/misc"
	"github.com/rolltrack/rolltrack/internal/readiness"
	"github.com/rolltrack/rolltrack/internal/telemetry/metrics"
	metricsmiddleware "github.com/rolltrack/rolltrack/internal/telemetry/metrics/middleware"
	"github.com/rolltrack/rolltrack/internal/telemetry/tracing"
	"github.com/rolltrack/rolltrack/internal/training"
	"github.com/rolltrack/rolltrack/internal/transcribe"
	"github.com/rolltrack/rolltrack/internal/whoop"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	iosAppSecret      string // used with the journal ios app
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	whoopClient *whoop.Client
	whoopRepo   *whoop.Repo
	whoopSyncer *whoop.Syncer

	transcribeService *transcribe.Service
	insightsAnalyzer  *insights.Analyzer

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	WhoopClientID           string
	WhoopClientSecret       string
	OpenAIApiKey            string
	IOSAppSecret            string
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "rolltrack_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "main-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	whoopRepo := whoop.NewRepo(dbPool)
	whoopClient := whoop.NewClient(whoop.NewClientParams{
		APIBaseURL:   params.Config.WhoopApiBaseURL,
		ClientID:     params.WhoopClientID,
		ClientSecret: params.WhoopClientSecret,
		AuthURL:      params.Config.WhoopAuthURL,
		TokenURL:     params.Config.WhoopTokenURL,
		RedirectURL:  params.Config.WhoopRedirectURL,
		Tokens:       whoopRepo,
		HTTPClient:   tracedHttpClient,
	})
	whoopSyncer := whoop.NewSyncer(whoopClient, whoopRepo, metricsManager)
	syncIntervalMins := params.Config.WhoopSyncIntervalMins
	if syncIntervalMins <= 0 {
		syncIntervalMins = 60
	}
	go func() {
		for range time.Tick(time.Duration(syncIntervalMins) * time.Minute) {
			whoopSyncer.SyncAndLog(ctx)
		}
	}()

	insightsCacheTTLMins := params.Config.InsightsCacheTTLMins
	if insightsCacheTTLMins <= 0 {
		insightsCacheTTLMins = 15
	}
	insightsAnalyzer := insights.NewAnalyzer(
		training.NewRepo(dbPool),
		readiness.NewRepo(dbPool),
		whoopRepo,
		rdb,
		metricsManager,
		time.Duration(insightsCacheTTLMins)*time.Minute,
	)

	s := &Server{
		config:       params.Config,
		dbPool:       dbPool,
		iosAppSecret: params.IOSAppSecret,
		versionInfo:  params.VersionInfo,

		whoopClient: whoopClient,
		whoopRepo:   whoopRepo,
		whoopSyncer: whoopSyncer,

		transcribeService: transcribe.NewService(params.OpenAIApiKey),
		insightsAnalyzer:  insightsAnalyzer,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	sessionsRepo := training.NewRepo(s.dbPool)
	sessionsHandler := training.NewHandler(sessionsRepo, s.insightsAnalyzer, s.metricsManager)
	r.HandleFunc("/session", sessionsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/session", sessionsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-session")
	r.HandleFunc("/session/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/session/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/session/list/page/{page}/size/{size}", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")

	readinessHandler := readiness.NewHandler(readiness.NewRepo(s.dbPool), s.insightsAnalyzer, s.metricsManager)
	r.HandleFunc("/readiness", readinessHandler.HandleUpsert).Methods("POST", "OPTIONS").Name("new-checkin")
	r.HandleFunc("/readiness", readinessHandler.HandleList).Methods("GET", "OPTIONS").Name("list-checkins")
	r.HandleFunc("/readiness/{day}", readinessHandler.HandleGetByDay).Methods("GET", "OPTIONS").Name("get-checkin")
	r.HandleFunc("/readiness/{id}", readinessHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-checkin")

	eventsHandler := events.NewHandler(
		events.NewService(events.NewRepo(s.dbPool)),
	)
	r.HandleFunc("/events/competition", eventsHandler.HandleAddCompetition).Methods("POST", "OPTIONS")
	r.HandleFunc("/events/promotion", eventsHandler.HandleAddPromotion).Methods("POST", "OPTIONS")
	r.HandleFunc("/events/seminar", eventsHandler.HandleAddSeminar).Methods("POST", "OPTIONS")
	r.HandleFunc("/events/injury", eventsHandler.HandleAddInjury).Methods("POST", "OPTIONS")
	r.HandleFunc("/events/list/page/{page}/size/{size}", eventsHandler.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/events/{id}", eventsHandler.HandleDelete).Methods("DELETE", "OPTIONS")

	gymsHandler := gyms.NewHandler(gyms.NewRepo(s.dbPool))
	r.HandleFunc("/gyms", gymsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-gym")
	r.HandleFunc("/gyms", gymsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-gyms")
	r.HandleFunc("/gyms", gymsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-gym")
	r.HandleFunc("/gyms/{id}", gymsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-gym")
	r.HandleFunc("/gyms/{id}", gymsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-gym")

	whoopHandler := whoop.NewHandler(
		s.whoopClient,
		s.whoopSyncer,
		s.whoopRepo,
		whoop.GenerateStateString,
	)
	r.HandleFunc("/whoop/connect", whoopHandler.HandleConnect).Methods("GET", "OPTIONS")
	r.HandleFunc("/whoop/connect/callback", whoopHandler.HandleConnectCallback).Methods("GET", "OPTIONS")
	r.HandleFunc("/whoop/status", whoopHandler.HandleStatus).Methods("GET", "OPTIONS")
	r.HandleFunc("/whoop/sync", whoopHandler.HandleSync).Methods("POST", "OPTIONS")
	r.HandleFunc("/whoop/recoveries", whoopHandler.HandleListRecoveries).Methods("GET", "OPTIONS")

	insightsHandler := insights.NewHandler(s.insightsAnalyzer)
	r.HandleFunc("/insights/overview", insightsHandler.HandleOverview).Methods("GET", "OPTIONS")
	r.HandleFunc("/insights/streaks", insightsHandler.HandleStreaks).Methods("GET", "OPTIONS")
	r.HandleFunc("/insights/load", insightsHandler.HandleLoad).Methods("GET", "OPTIONS")
	r.HandleFunc("/insights/suggestion", insightsHandler.HandleSuggestion).Methods("GET", "OPTIONS")
	r.HandleFunc("/insights/correlations", insightsHandler.HandleCorrelations).Methods("GET", "OPTIONS")
	r.HandleFunc("/insights/diversity", insightsHandler.HandleDiversity).Methods("GET", "OPTIONS")

	transcribeHandler := transcribe.NewHandler(
		s.transcribeService,
		sessionsRepo,
		s.metricsManager,
	)
	r.HandleFunc("/transcribe/session/{id}", transcribeHandler.HandleSessionVoiceNote).Methods("POST", "OPTIONS")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.iosAppSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.
		New(s.promRegistry, nil).
		WrapHandler("/metrics", promhttp.HandlerFor(
			s.promRegistry,
			promhttp.HandlerOpts{}),
		))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
