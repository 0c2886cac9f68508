package observability

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/raizsolar/backoffice/internal/observability/logger"
	"github.com/raizsolar/backoffice/internal/observability/metrics"
	"github.com/raizsolar/backoffice/internal/observability/tracing"
)

var Module = fx.Module("observability",
	fx.Provide(
		LoadConfig,
		NewLogger,
		metrics.New,
	),
	fx.Invoke(registerProviders),
)

func NewLogger(lc fx.Lifecycle, cfg Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.ServiceName, cfg.Environment, cfg.Version, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = log.Sync()
			return nil
		},
	})

	return log, nil
}

func registerProviders(lc fx.Lifecycle, cfg Config, log *zap.Logger) error {
	if !cfg.OtelEnabled || cfg.OtelExporterEndpoint == "" {
		log.Info("otel exporters disabled")
		return nil
	}

	ctx := context.Background()

	_, shutdownTraces, err := tracing.NewProvider(ctx, tracing.Options{
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
		Version:          cfg.Version,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		SamplingRatio:    cfg.OtelSamplingRatio,
	})
	if err != nil {
		return err
	}

	_, shutdownMetrics, err := metrics.NewProvider(ctx, metrics.Options{
		ServiceName:      cfg.ServiceName,
		Environment:      cfg.Environment,
		Version:          cfg.Version,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := shutdownTraces(ctx); err != nil {
				log.Warn("trace provider shutdown", zap.Error(err))
			}
			if err := shutdownMetrics(ctx); err != nil {
				log.Warn("meter provider shutdown", zap.Error(err))
			}
			return nil
		},
	})

	log.Info("otel exporters registered",
		zap.String("endpoint", cfg.OtelExporterEndpoint),
		zap.String("protocol", cfg.OtelExporterProtocol),
	)
	return nil
}
