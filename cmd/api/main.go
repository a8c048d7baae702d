package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/Ramsey-B/clover/config"
	"github.com/Ramsey-B/clover/internal/repositories/appointment"
	"github.com/Ramsey-B/clover/internal/repositories/client"
	"github.com/Ramsey-B/clover/internal/repositories/finance"
	"github.com/Ramsey-B/clover/internal/repositories/goal"
	"github.com/Ramsey-B/clover/internal/repositories/lead"
	"github.com/Ramsey-B/clover/internal/repositories/leadactivity"
	"github.com/Ramsey-B/clover/internal/repositories/leadbatch"
	"github.com/Ramsey-B/clover/internal/repositories/recruit"
	"github.com/Ramsey-B/clover/internal/repositories/task"
	"github.com/Ramsey-B/clover/internal/repositories/team"
	"github.com/Ramsey-B/clover/pkg/dashboard"
	"github.com/Ramsey-B/clover/pkg/database"
	"github.com/Ramsey-B/clover/pkg/dialing"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/kafka"
	"github.com/Ramsey-B/clover/pkg/logger"
	"github.com/Ramsey-B/clover/pkg/middleware"
	"github.com/Ramsey-B/clover/pkg/policy"
	"github.com/Ramsey-B/clover/pkg/processor"
	"github.com/Ramsey-B/clover/pkg/redis"
	appointmentroutes "github.com/Ramsey-B/clover/pkg/routes/appointments"
	clientroutes "github.com/Ramsey-B/clover/pkg/routes/clients"
	dashboardroutes "github.com/Ramsey-B/clover/pkg/routes/dashboard"
	financeroutes "github.com/Ramsey-B/clover/pkg/routes/finance"
	founderroutes "github.com/Ramsey-B/clover/pkg/routes/founder"
	goalroutes "github.com/Ramsey-B/clover/pkg/routes/goals"
	"github.com/Ramsey-B/clover/pkg/routes/health"
	leadbatchroutes "github.com/Ramsey-B/clover/pkg/routes/leadbatch"
	leadroutes "github.com/Ramsey-B/clover/pkg/routes/leads"
	recruitroutes "github.com/Ramsey-B/clover/pkg/routes/recruit"
	taskroutes "github.com/Ramsey-B/clover/pkg/routes/tasks"
	teamroutes "github.com/Ramsey-B/clover/pkg/routes/team"
	tenantroutes "github.com/Ramsey-B/clover/pkg/routes/tenant"
	"github.com/Ramsey-B/clover/pkg/startup"
	"github.com/Ramsey-B/clover/pkg/tracing"
	"github.com/Ramsey-B/clover/pkg/tracing/exporters"
)

func main() {
	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger, flush, err := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.PrettyLogs})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer flush()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.TracingEnabled {
		exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
			Endpoint: cfg.TracingOTLPEndpoint,
			Protocol: cfg.TracingOTLPProtocol,
			Insecure: true,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			appLogger.WithError(err).Fatal("failed to create trace exporter")
		}
		tp, err := tracing.Init(ctx, cfg.AppName, exporter)
		if err != nil {
			appLogger.WithError(err).Fatal("failed to init tracing")
		}
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = tp.Shutdown(shutdownCtx)
		}()
	}

	app := &app{cfg: cfg, logger: appLogger}

	boot := startup.NewStartup(appLogger, cfg.StartupMaxAttempts)
	boot.AddDependency(&dependency{name: "database", start: app.startDatabase, stop: app.stopDatabase})
	boot.AddDependency(&dependency{name: "migrations", dependsOn: []string{"database"}, start: app.runMigrations})
	boot.AddDependency(&dependency{name: "redis", start: app.startRedis, stop: app.stopRedis})
	boot.AddDependency(&dependency{name: "kafka", dependsOn: []string{"database"}, start: app.startKafka, stop: app.stopKafka})
	boot.AddDependency(&dependency{name: "http", dependsOn: []string{"database", "migrations", "redis", "kafka"}, start: app.startServer, stop: app.stopServer})

	if err := boot.Start(ctx); err != nil {
		appLogger.WithError(err).Fatal("startup failed")
	}

	<-ctx.Done()
	appLogger.Info("Shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := boot.Stop(stopCtx); err != nil {
		appLogger.WithError(err).Error("shutdown did not complete cleanly")
	}
}

// dependency adapts closures to the startup graph.
type dependency struct {
	name      string
	dependsOn []string
	start     func(ctx context.Context) error
	stop      func(ctx context.Context) error
}

func (d *dependency) GetName() string     { return d.name }
func (d *dependency) DependsOn() []string { return d.dependsOn }

func (d *dependency) Start(ctx context.Context) error {
	if d.start == nil {
		return nil
	}
	return d.start(ctx)
}

func (d *dependency) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	return d.stop(ctx)
}

type app struct {
	cfg    *config.Config
	logger ectologger.Logger

	db       database.DB
	redis    *redis.Client
	producer *kafka.Producer
	consumer *kafka.Consumer
	server   *echo.Echo
	checker  *health.Checker
}

func (a *app) startDatabase(ctx context.Context) error {
	db, err := database.Connect(ctx, database.ConnectionConfig{
		Driver:          a.cfg.DatabaseDriver,
		Host:            a.cfg.DatabaseHost,
		Port:            a.cfg.DatabasePort,
		UserName:        a.cfg.DatabaseUserName,
		Password:        a.cfg.DatabasePassword,
		Name:            a.cfg.DatabaseName,
		SSLMode:         a.cfg.DatabaseSSLMode,
		MaxOpenConns:    a.cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    a.cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: a.cfg.DatabaseConnMaxLifetime,
	}, a.logger)
	if err != nil {
		return err
	}
	a.db = db
	return nil
}

func (a *app) stopDatabase(ctx context.Context) error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *app) runMigrations(ctx context.Context) error {
	instance, ok := a.db.(*database.DatabaseInstance)
	if !ok {
		return fmt.Errorf("database does not support migrations")
	}

	driver, err := migratepg.WithInstance(instance.DB.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	ms := database.NewMigrationService(a.logger, &database.MigrationConfig{
		MigrationFolderPath: a.cfg.DatabaseMigrationFolderPath,
		Version:             uint(a.cfg.DatabaseMigrationVersion),
		Force:               a.cfg.DatabaseMigrationForce,
	})
	return ms.Migrate(a.cfg.DatabaseName, driver)
}

func (a *app) startRedis(ctx context.Context) error {
	if !a.cfg.RedisEnabled {
		return nil
	}
	client, err := redis.NewClient(redis.Config{
		Host:     a.cfg.RedisHost,
		Port:     a.cfg.RedisPort,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	}, a.logger)
	if err != nil {
		return err
	}
	a.redis = client
	return nil
}

func (a *app) stopRedis(ctx context.Context) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

func (a *app) startKafka(ctx context.Context) error {
	a.producer = kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      a.cfg.KafkaBrokers,
		Topic:        a.cfg.KafkaOutputTopic,
		BatchSize:    a.cfg.KafkaBatchSize,
		BatchTimeout: time.Duration(a.cfg.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: a.cfg.KafkaRequiredAcks,
		Compression:  a.cfg.KafkaCompression,
	}, a.logger)

	if !a.cfg.KafkaConsumerEnabled {
		return nil
	}

	leads := lead.NewRepository(a.db, a.logger)
	emitter := events.NewEmitter(a.producer, a.logger)
	proc := processor.NewProcessor(leads, emitter, a.logger)

	a.consumer = kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:       a.cfg.KafkaBrokers,
		Topic:         a.cfg.KafkaImportTopic,
		ConsumerGroup: a.cfg.KafkaConsumerGroup,
	}, a.logger, proc.HandleMessage)

	return a.consumer.Start(ctx)
}

func (a *app) stopKafka(ctx context.Context) error {
	if a.consumer != nil {
		if err := a.consumer.Stop(); err != nil {
			return err
		}
	}
	if a.producer != nil {
		return a.producer.Close()
	}
	return nil
}

func (a *app) startServer(ctx context.Context) error {
	if err := a.registerDependencies(); err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(a.cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(a.cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(a.cfg.HttpServerIdleTimeoutSeconds) * time.Second
	e.HTTPErrorHandler = middleware.Error(a.logger)

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: a.cfg.AllowOrigins,
		AllowMethods: a.cfg.AllowMethods,
	}))
	if a.cfg.TracingEnabled {
		e.Use(otelecho.Middleware(a.cfg.AppName))
	}
	e.Use(middleware.Context())
	e.Use(middleware.Logger(a.logger))
	if a.cfg.AuthEnabled {
		e.Use(middleware.Authentication(a.logger, a.cfg.AuthIssuerURL, a.cfg.AuthClientID))
	} else {
		e.Use(middleware.TestAuth())
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	var redisPinger interface{ Ping(ctx context.Context) error }
	if a.redis != nil {
		redisPinger = a.redis
	}
	a.checker = health.NewChecker(a.db, redisPinger, os.Getenv("APP_VERSION"))
	a.checker.RegisterRoutes(e)

	api := e.Group("/api/v1")
	leadroutes.Register(api.Group("/leads", middleware.Authorize(policy.ResourceLeads)))
	leadbatchroutes.Register(api.Group("/lead-batches", middleware.Authorize(policy.ResourceLeads)))
	appointmentroutes.Register(api.Group("/appointments", middleware.Authorize(policy.ResourceLeads)))
	taskroutes.Register(api.Group("/tasks", middleware.Authorize(policy.ResourceLeads)))
	financeroutes.Register(api.Group("/finance", middleware.Authorize(policy.ResourceFinance)))
	clientroutes.Register(api.Group("/clients", middleware.Authorize(policy.ResourceClients)))
	goalroutes.Register(api.Group("/goals", middleware.Authorize(policy.ResourceDashboard)))
	dashboardroutes.Register(api.Group("/dashboard", middleware.Authorize(policy.ResourceDashboard)))
	teamroutes.Register(api.Group("/team", middleware.Authorize(policy.ResourceTeam)))
	founderroutes.Register(api.Group("/founder", middleware.Authorize(policy.ResourceFounder)))
	recruitroutes.RegisterProfile(api.Group("/recruits/profile", middleware.Authorize(policy.ResourceRecruit)))
	recruitroutes.Register(api.Group("/recruits", middleware.Authorize(policy.ResourceTeam)))
	tenantroutes.Register(api.Group("", middleware.Authorize(policy.ResourceTenant)))

	a.server = e

	go func() {
		addr := fmt.Sprintf(":%d", a.cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Fatal("http server stopped")
		}
	}()

	a.checker.SetReady(true)
	return nil
}

func (a *app) stopServer(ctx context.Context) error {
	if a.checker != nil {
		a.checker.SetReady(false)
	}
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// registerDependencies wires the singletons the route handlers resolve at
// request time.
func (a *app) registerDependencies() error {
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return err
	}

	leads := lead.NewRepository(a.db, a.logger)
	activities := leadactivity.NewRepository(a.db, a.logger)
	appointments := appointment.NewRepository(a.db, a.logger)
	tasks := task.NewRepository(a.db, a.logger)
	batches := leadbatch.NewRepository(a.db, a.logger)
	finances := finance.NewRepository(a.db, a.logger)
	clients := client.NewRepository(a.db, a.logger)
	goals := goal.NewRepository(a.db, a.logger)
	recruits := recruit.NewRepository(a.db, a.logger)
	teams := team.NewRepository(a.db, a.logger)

	emitter := events.NewEmitter(a.producer, a.logger)

	selector := dialing.NewSelector(leads, dialing.SelectorConfig{
		Cooldown: a.cfg.DialCooldown,
		Limit:    a.cfg.DialReadyLimit,
	}, a.logger)
	resolver := dialing.NewResolver(a.db, leads, activities, appointments, tasks, emitter, a.logger)

	var cache *redis.Cache
	if a.redis != nil {
		cache = redis.NewCache(a.redis, "clover", a.cfg.StatsCacheTTL)
	}
	dashboards := dashboard.NewService(leads, activities, teams, cache, a.logger)

	if err := ectoinject.RegisterInstance[database.DB](container, a.db); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[ectologger.Logger](container, a.logger); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*lead.Repository](container, leads); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*leadactivity.Repository](container, activities); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*appointment.Repository](container, appointments); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*task.Repository](container, tasks); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*leadbatch.Repository](container, batches); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*finance.Repository](container, finances); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*client.Repository](container, clients); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*goal.Repository](container, goals); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*recruit.Repository](container, recruits); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*team.Repository](container, teams); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*events.Emitter](container, emitter); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*dialing.Selector](container, selector); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*dialing.Resolver](container, resolver); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*dashboard.Service](container, dashboards); err != nil {
		return err
	}

	return nil
}
