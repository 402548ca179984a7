package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-performance-api/infrastructure/database/postgres"
	"github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon"
	"github.com/vfg2006/ads-performance-api/infrastructure/integrator/amazon/amzclient"
	"github.com/vfg2006/ads-performance-api/infrastructure/repository"
	"github.com/vfg2006/ads-performance-api/internal/api"
	"github.com/vfg2006/ads-performance-api/internal/config"
	"github.com/vfg2006/ads-performance-api/internal/scheduler"
	"github.com/vfg2006/ads-performance-api/internal/usecases/aggregating"
	"github.com/vfg2006/ads-performance-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-performance-api/internal/usecases/listing"
	"github.com/vfg2006/ads-performance-api/internal/usecases/recording"
	"github.com/vfg2006/ads-performance-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-performance-api/internal/usecases/syncing"
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

	userRepo := repository.NewUserRepository(pgConn)
	metricDefinitionRepo := repository.NewMetricDefinitionRepository(pgConn)
	statisticRepo := repository.NewStatisticRepository(pgConn)
	aggregationRepo := repository.NewAggregationRepository(pgConn)
	entityRepo := repository.NewEntityRepository(pgConn)
	syncLogRepo := repository.NewSyncLogRepository(pgConn)
	reportJobRepo := repository.NewReportJobRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	tokenManager := amzclient.NewTokenManager(cfg)
	amazonClient := amzclient.NewClient(cfg, tokenManager)
	amazonIntegrator := amazon.New(cfg, amazonClient)

	recorder := recording.NewService(cfg, metricDefinitionRepo, statisticRepo)
	aggregator := aggregating.NewService(cfg, aggregationRepo)
	lister := listing.NewService(entityRepo)
	dispatcher := syncing.NewService(amazonIntegrator, pgConn, syncLogRepo, entityRepo)
	reporter := reporting.NewService(cfg, amazonClient, reportJobRepo, recorder)

	// Inicializa o agendador de polling de relatórios pendentes
	reportPollService := scheduler.NewReportPollService(reporter, cfg)

	if err := reportPollService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de polling de relatórios")
	} else {
		logrus.Info("Agendador de polling de relatórios iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		aggregator,
		lister,
		reporter,
		dispatcher,
		authenticator,
		reportPollService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
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
