package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/api/handler"
	"github.com/vfg2006/dsp-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
	"github.com/vfg2006/dsp-analytics-api/internal/scheduler"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/summarizing"
	"github.com/vfg2006/dsp-analytics-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Dependencies agrupa os serviços expostos pela API
type Dependencies struct {
	DB                      handler.Pinger
	Importer                importing.Importer
	Summarizer              summarizing.Summarizer
	ImportAudits            repository.ImportAuditRepository
	FolderImportSyncService *scheduler.FolderImportSyncService
}

func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	cronServices := handler.CronJobServices{
		FolderImportSyncService: deps.FolderImportSyncService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.DB)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Imports(deps.Importer, deps.ImportAudits, cfg.Import.UploadDir)...),
		router.WithRoutes(handler.Analytics(deps.Summarizer)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	for _, route := range rt.Routes() {
		logrus.Debugf("Rota registrada: %s %s", route.Method, route.Path)
	}

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler devolve o handler HTTP completo, com middlewares
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
