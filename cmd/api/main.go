package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-analytics-api/infrastructure/analytics"
	"github.com/vfg2006/store-analytics-api/infrastructure/database/postgres"
	"github.com/vfg2006/store-analytics-api/infrastructure/repository"
	"github.com/vfg2006/store-analytics-api/internal/api"
	"github.com/vfg2006/store-analytics-api/internal/config"
	"github.com/vfg2006/store-analytics-api/internal/scheduler"
	"github.com/vfg2006/store-analytics-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	salesRepo := repository.NewSalesRepository(pgConn)

	backend := newAnalyticsBackend(cfg)
	reporterService := reporting.NewService(cfg, salesRepo, backend)

	// Inicializa o agendador de snapshots diários
	snapshotService := scheduler.NewDailySnapshotService(reporterService, cfg)
	if err := snapshotService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots de analytics")
	} else {
		logrus.Info("Agendador de snapshots de analytics iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reporterService,
		snapshotService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// newAnalyticsBackend seleciona o backend de agregação por configuração.
// O backend de subprocesso isola a engine atrás da fronteira de transporte;
// o nativo roda em processo e é o padrão.
func newAnalyticsBackend(cfg *config.Config) analytics.Backend {
	switch cfg.Analytics.Backend {
	case "subprocess":
		timeout := time.Duration(cfg.Analytics.EngineTimeoutSeconds) * time.Second

		logrus.WithFields(logrus.Fields{
			"engine_path": cfg.Analytics.EnginePath,
			"timeout":     timeout.String(),
		}).Info("Backend de analytics: subprocess")

		return analytics.NewSubprocessBackend(cfg.Analytics.EnginePath, timeout)
	default:
		logrus.Info("Backend de analytics: native")
		return analytics.NewNativeBackend()
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
