package server

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prompthost/prompthost/internal/capture"
	"github.com/prompthost/prompthost/internal/events"
	"github.com/prompthost/prompthost/internal/execution"
	"github.com/prompthost/prompthost/internal/notify"
	"github.com/prompthost/prompthost/internal/repository"
	"github.com/prompthost/prompthost/internal/routing"
	"github.com/prompthost/prompthost/internal/server/routes"
	"github.com/prompthost/prompthost/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/samber/do"
	"gorm.io/gorm"
)

type Config struct {
	DataDir string
	Port    int
	Logger  zerolog.Logger
}

type Server struct {
	e      *echo.Echo
	config *Config
}

func New(config *Config) *Server {
	e := echo.New()
	e.HidePort = true
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogRemoteIP:  true,
		LogHost:      true,
		LogMethod:    true,
		LogURI:       true,
		LogUserAgent: true,
		LogStatus:    true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			config.Logger.Info().
				Str("remote_ip", v.RemoteIP).
				Str("host", v.Host).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("user_agent", v.UserAgent).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Msg("handled request")
			return nil
		},
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			config.Logger.Error().Err(err).Bytes("stack", stack).Send()
			return err
		},
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := config.Logger.WithContext(req.Context())
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	s := &Server{e: e, config: config}
	s.init()
	return s
}

func (s *Server) init() {
	injector := do.New()
	s.injectDependencies(injector)
	s.registerRoutes(injector)
	s.subscribeHandlers(injector)
}

func (s *Server) injectDependencies(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gorm.DB, error) {
		return repository.NewSQLiteDB(s.config.DataDir)
	})
	do.Provide(injector, func(i *do.Injector) (repository.DeploymentTestRepository, error) {
		return repository.NewDeploymentTestRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.ProjectRepository, error) {
		return repository.NewProjectRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.CommitRepository, error) {
		return repository.NewCommitRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.DocumentRepository, error) {
		return repository.NewDocumentRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.UserRepository, error) {
		return repository.NewUserRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (repository.RunRepository, error) {
		return repository.NewRunRepository(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(injector, func(i *do.Injector) (*routing.Router, error) {
		return routing.NewRouter(), nil
	})
	do.Provide(injector, func(i *do.Injector) (*events.Bus, error) {
		return events.NewBus(s.config.Logger), nil
	})
	do.Provide(injector, func(i *do.Injector) (capture.Sink, error) {
		return capture.NewLogSink(s.config.Logger), nil
	})
	do.Provide(injector, func(i *do.Injector) (execution.Engine, error) {
		return execution.NewLocalEngine(do.MustInvoke[repository.RunRepository](i), s.config.Logger), nil
	})
	do.Provide(injector, func(i *do.Injector) (*notify.Notifier, error) {
		return notify.NewNotifier(do.MustInvoke[repository.UserRepository](i), s.config.Logger), nil
	})
	do.Provide(injector, usecase.NewActiveTestGuard)
	do.Provide(injector, usecase.NewCreateDeploymentTestUsecase)
	do.Provide(injector, usecase.NewStartDeploymentTestUsecase)
	do.Provide(injector, usecase.NewPauseDeploymentTestUsecase)
	do.Provide(injector, usecase.NewStopDeploymentTestUsecase)
	do.Provide(injector, usecase.NewDestroyDeploymentTestUsecase)
	do.Provide(injector, usecase.NewUpdateDeploymentTestUsecase)
	do.Provide(injector, usecase.NewListDeploymentTestsUsecase)
	do.Provide(injector, usecase.NewResolveRoutingUsecase)
	do.Provide(injector, usecase.NewStartDocumentRunUsecase)
	do.Provide(injector, usecase.NewDispatchShadowRunUsecase)
}

func (s *Server) registerRoutes(injector *do.Injector) {
	routes.RegisterRestAPI(injector, s.e)
}

func (s *Server) subscribeHandlers(injector *do.Injector) {
	bus := do.MustInvoke[*events.Bus](injector)
	notifier := do.MustInvoke[*notify.Notifier](injector)
	bus.Subscribe(notifier.HandleEvent)

	dispatcher := do.MustInvoke[usecase.DispatchShadowRunUsecase](injector)
	bus.Subscribe(func(ctx context.Context, event any) {
		if started, ok := event.(*events.RunStarted); ok {
			dispatcher.Execute(ctx, started)
		}
	})
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.config.Logger.Info().Str("addr", addr).Msg("starting server")
	return s.e.Start(addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
