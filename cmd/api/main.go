package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/database"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/migration"
	"github.com/vfg2006/dsp-analytics-api/infrastructure/repository"
	"github.com/vfg2006/dsp-analytics-api/internal/api"
	"github.com/vfg2006/dsp-analytics-api/internal/config"
	"github.com/vfg2006/dsp-analytics-api/internal/scheduler"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/importing"
	"github.com/vfg2006/dsp-analytics-api/internal/usecases/summarizing"
	"github.com/vfg2006/dsp-analytics-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	if err := migration.Run(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar o schema do banco de dados")
	}

	artistRepo := repository.NewArtistRepository(conn)
	analyticsRepo := repository.NewAnalyticsRepository(conn)
	auditRepo := repository.NewImportAuditRepository(conn)

	if _, err := migration.Seed(ctx, artistRepo); err != nil {
		logrus.WithError(err).Fatal("Erro ao cadastrar o artista padrão")
	}

	estimator, err := importing.EstimatorFromConfig(cfg.Import)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a tabela de tarifas")
	}

	importService := importing.NewService(
		importing.OptionsFromConfig(cfg.Import),
		conn,
		artistRepo,
		analyticsRepo,
		auditRepo,
		importing.DecoderFromConfig(cfg.Import),
		estimator,
	)

	summaryService := summarizing.NewService(artistRepo, analyticsRepo, auditRepo)

	folderImportSyncService := scheduler.NewFolderImportSyncService(importService, cfg)
	if err := folderImportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação por pasta")
	} else {
		logrus.Info("Agendador de importação por pasta iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		DB:                      conn,
		Importer:                importService,
		Summarizer:              summaryService,
		ImportAudits:            auditRepo,
		FolderImportSyncService: folderImportSyncService,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// dbconn cria uma conexão com o banco de dados configurado
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}
