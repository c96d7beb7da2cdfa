package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/x/store"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/plugin/opentelemetry/tracing"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

var (
	version = "unknown"
)

func main() {

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	slog.Info(fmt.Sprintf("Companion %s starting...", version))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	config := Config{}
	configPath := os.Getenv("COMPANION_CONFIG")
	if configPath == "" {
		configPath = "/etc/companion/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error(fmt.Sprintf("Failed to load config: %v", err))
		os.Exit(1)
	}

	slog.Info(fmt.Sprintf("Config loaded! backend: %s", config.Server.Backend))

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, "companion-api", version)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
		)
		e.Use(otelecho.Middleware("api", skipper))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "companion",
		LabelFuncs: map[string]echoprometheus.LabelValueFunc{
			"url": func(c echo.Context, err error) string {
				return "REDACTED"
			},
		},
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	e.Use(middleware.Recover())

	var (
		storeService store.Service
		health       func(ctx context.Context) error
	)

	switch config.Server.Backend {
	case BackendMemory:
		slog.Warn("using the in-memory backend, documents are lost on restart")
		storeService = store.NewMemoryStore()
		health = func(ctx context.Context) error { return nil }
	default:
		db, rdb, mc := setupBackend(config)
		sqlDB, err := db.DB()
		if err != nil {
			panic("failed to connect database")
		}
		defer sqlDB.Close()
		defer mc.Close()

		storeService = SetupStoreService(db, rdb, mc)
		health = func(ctx context.Context) error {
			if err := sqlDB.PingContext(ctx); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis error: %w", err)
			}
			return nil
		}
	}

	storeHandler := store.NewHandler(storeService)

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/docs/*", storeHandler.Get)
	apiV1.PUT("/docs/*", storeHandler.Set)
	apiV1.PATCH("/docs/*", storeHandler.Patch)
	apiV1.DELETE("/docs/*", storeHandler.Delete)
	apiV1.GET("/collections/*", storeHandler.List)
	apiV1.GET("/realtime", storeHandler.Realtime)

	e.GET("/health", func(c echo.Context) (err error) {
		err = health(c.Request().Context())
		if err != nil {
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.String(http.StatusOK, "ok")
	})

	var resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "companion_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(resourceCountMetrics)

	var realtimeMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "companion_realtime",
			Help: "realtime connections and listeners",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(realtimeMetrics)

	var storeMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "companion_store",
			Help: "store internals",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(storeMetrics)

	go func() {
		for {
			time.Sleep(15 * time.Second)

			for name, value := range storeHandler.GetMetrics() {
				realtimeMetrics.WithLabelValues(name).Set(float64(value))
			}
			for name, value := range storeService.GetMetrics() {
				storeMetrics.WithLabelValues(name).Set(float64(value))
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			count, err := storeService.Count(ctx)
			cancel()
			if err != nil {
				slog.Error(fmt.Sprintf("failed to count documents: %v", err))
				continue
			}
			resourceCountMetrics.WithLabelValues("document").Set(float64(count))
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	e.Logger.Fatal(e.Start(config.Server.Listen))
}

func setupBackend(config Config) (*gorm.DB, *redis.Client, *memcache.Client) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	// Migrate the schema
	slog.Info("start migrate")
	err = db.AutoMigrate(&core.DocumentRecord{})
	if err != nil {
		panic("failed to migrate schema")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "", // no password set
		DB:       config.Server.RedisDB,
	})
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	mc := memcache.New(config.Server.MemcachedAddr)

	return db, rdb, mc
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}
