package di

import (
	"context"
	"fmt"
	"time"

	"FinWeave/internal/domain/repository"
	"FinWeave/internal/handler/api"
	internalrepo "FinWeave/internal/repository"
	"FinWeave/internal/service/yahoo"
	"FinWeave/internal/usecase"
	"FinWeave/pkg/cache"
	pkgch "FinWeave/pkg/clickhouse"
	"FinWeave/pkg/config"
	xhttp "FinWeave/pkg/http"
	pkgkafka "FinWeave/pkg/kafka"
	"FinWeave/pkg/logger"
	"FinWeave/pkg/metrics"
	"FinWeave/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	lc := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return logger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePriceSource creates the chart API source, with a series cache when
// enabled (Redis if an address is configured, in-process otherwise).
func ProvidePriceSource(cfg *config.Config, log *logger.Logger) (repository.PriceSource, error) {
	if !cfg.Cache.Enabled {
		return yahoo.New(cfg, log), nil
	}

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	var svc cache.Service
	if cfg.Cache.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		svc = rc
	} else {
		svc = cache.NewMemoryCache()
	}

	return yahoo.New(cfg, log, yahoo.WithCache(svc, ttl)), nil
}

// ProvideCollector creates the fetch fan-out use case.
func ProvideCollector(
	source repository.PriceSource,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.SeriesCollector {
	return usecase.NewSeriesCollector(source, m, log, cfg.Pipeline.FetchWorkers, cfg.Pipeline.MinSuccess)
}

// ProvideCleaner creates the per-asset quality use case.
func ProvideCleaner(m repository.Metrics, log *logger.Logger) *usecase.AssetCleaner {
	return usecase.NewAssetCleaner(m, log)
}

// ProvideExporter selects the export backend from config.
func ProvideExporter(cfg *config.Config, log *logger.Logger) (repository.Exporter, error) {
	switch cfg.Export.Type {
	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.ClickHouse.Host),
			pkgch.WithPort(cfg.ClickHouse.Port),
			pkgch.WithDatabase(cfg.ClickHouse.Database),
			pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		store := internalrepo.NewClickHouseStore(client, cfg.ClickHouse.Table, log)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.InitSchema(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		return store, nil

	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
			pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
			pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
			pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
			pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
			pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic, log), nil

	default:
		return internalrepo.NewCSVExporter(cfg.Export.Path, log), nil
	}
}

// ProvidePipeline creates the pipeline use case.
func ProvidePipeline(
	cfg *config.Config,
	collector *usecase.SeriesCollector,
	cleaner *usecase.AssetCleaner,
	exporter repository.Exporter,
	m repository.Metrics,
	log *logger.Logger,
) *usecase.Pipeline {
	return usecase.NewPipeline(cfg, collector, cleaner, exporter, m, log)
}

// ProvideHandler creates the API handler serving the latest result.
func ProvideHandler(pipeline *usecase.Pipeline) xhttp.Handler {
	return api.NewMasterHandler(pipeline)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	pipeline *usecase.Pipeline,
	exporter repository.Exporter,
	handler xhttp.Handler,
	log *logger.Logger,
) *server.App {
	return server.New(cfg, pipeline, exporter, handler, log)
}
