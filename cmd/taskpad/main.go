package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/taskpad/taskpad/modules/todo"
	"github.com/taskpad/taskpad/pkg/config"
	"github.com/taskpad/taskpad/pkg/environment"
	"github.com/taskpad/taskpad/pkg/httpserver"
	"github.com/taskpad/taskpad/pkg/logger"
	mongodb "github.com/taskpad/taskpad/pkg/mongo"
	"github.com/taskpad/taskpad/pkg/requestid"
	"github.com/taskpad/taskpad/pkg/telemetry"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"APP_SERVICE_NAME" envDefault:"taskpad"`
	Database string `env:"MONGODB_DATABASE" envDefault:"taskpad"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Service stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  appConfig
		mongCfg mongodb.Config
		telCfg  telemetry.Config
		httpCfg httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&mongCfg)
	config.MustLoad(&telCfg)
	config.MustLoad(&httpCfg)

	remote, err := telemetry.New(ctx, telCfg)
	if err != nil {
		return err
	}
	defer remote.Close()

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Service),
		logger.WithAdditionalHandlers(remote),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	client, err := mongodb.New(ctx, mongCfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	store := todo.NewMongoStore(client.Database(appCfg.Database))
	svc := todo.NewService(store, log)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(environment.Environment(appCfg.Env)))
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/readyz", httpserver.HealthCheckHandler(ctx, log, mongodb.Healthcheck(client)))
	r.Mount("/tasks", todo.Router(svc))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log.With(logger.Component("httpserver"))),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.InfoContext(ctx, "HTTP server starting", slog.String("addr", httpCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.InfoContext(ctx, "HTTP server stopped")
		}),
	)
	return srv.Run(ctx, r)
}
