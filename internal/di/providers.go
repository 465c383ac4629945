package di

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ProbabilityPit/internal/domain/repository"
	domsvc "ProbabilityPit/internal/domain/service"
	"ProbabilityPit/internal/handler/api"
	"ProbabilityPit/internal/handler/web"
	internalrepo "ProbabilityPit/internal/repository"
	svcmetrics "ProbabilityPit/internal/service/metrics"
	"ProbabilityPit/internal/service/ratelimit"
	"ProbabilityPit/internal/services/curriculum"
	"ProbabilityPit/internal/usecase"
	"ProbabilityPit/pkg/cache"
	"ProbabilityPit/pkg/config"
	xhttp "ProbabilityPit/pkg/http"
	pkgkafka "ProbabilityPit/pkg/kafka"
	applogger "ProbabilityPit/pkg/logger"
	"ProbabilityPit/pkg/metrics"
	"ProbabilityPit/pkg/server"
)

const serviceName = "probabilitypit"

// ProvideKafkaProducer creates the producer used for log shipping. It returns nil
// when shipping is disabled, so no broker connection is attempted.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.LogShipping.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAutoCreateTopic(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideLogger creates the application logger and attaches the error log
// collector when a producer is available.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			Service:        serviceName,
			TimeInterval:   cfg.LogShipping.Interval,
			CountThreshold: cfg.LogShipping.CountThreshold,
			Topic:          cfg.LogShipping.Topic,
			Publisher:      producer,
		})
	}
	return l, nil
}

// ProvideMetrics creates the Prometheus recorder on the default registry and
// registers the API collectors alongside it.
func ProvideMetrics() repository.Metrics {
	svcmetrics.Register()
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideContentSource picks the lesson source from config.
func ProvideContentSource(cfg *config.Config) repository.ContentSource {
	if cfg.Curriculum.Source == "http" {
		return internalrepo.NewHTTPContentSource(cfg.Curriculum.BaseURL, cfg.Curriculum.FetchTimeout)
	}
	return internalrepo.NewFSContentSource(cfg.Curriculum.Dir)
}

// ProvideCache creates the lesson cache for the configured backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "memory" {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxSize),
			cache.WithMemoryDefaultTTL(cfg.Curriculum.CacheTTL),
			cache.WithMemoryCleanup(cfg.Cache.CleanupInterval),
		), nil
	}

	r := cfg.Cache.Redis
	redis, err := cache.NewRedisCache(
		cache.WithRedisAddr(r.Addr),
		cache.WithRedisPassword(r.Password),
		cache.WithRedisDB(r.DB),
		cache.WithRedisPool(r.PoolSize, 2, 30*time.Second),
		cache.WithRedisPrefix(r.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if cfg.Cache.Backend == "layered" {
		return cache.NewLayeredCache(redis,
			cache.WithLayeredMemorySize(cfg.Cache.MaxSize),
			cache.WithLayeredMemoryTTL(cfg.Cache.L1TTL),
		), nil
	}
	return redis, nil
}

// ProvideMarkdownRenderer creates the lesson renderer.
func ProvideMarkdownRenderer() domsvc.MarkdownRenderer {
	return curriculum.NewRenderer()
}

// ProvideLessonUsecase creates the lesson loader.
func ProvideLessonUsecase(
	source repository.ContentSource,
	c cache.Service,
	renderer domsvc.MarkdownRenderer,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.LessonUsecase {
	u := usecase.NewLessonUsecase(source, c, renderer, m, l, cfg.Curriculum.CacheTTL)
	if cfg.Curriculum.PurgeOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.Purge(ctx); err != nil {
			l.Warn("lesson cache purge failed", applogger.Error(err))
		}
	}
	return u
}

// ProvideRiskUsecase creates the calculator use case.
func ProvideRiskUsecase(m repository.Metrics) *usecase.RiskUsecase {
	return usecase.NewRiskUsecase(m)
}

// ProvideRateLimiter creates the per-client limiter for the JSON calculator.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst, cfg.RateLimit.Idle)
}

// ProvideTemplates parses the embedded page templates.
func ProvideTemplates() (*web.Templates, error) {
	t, err := web.NewTemplates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	return t, nil
}

// ProvideHTTPHandler mounts every route group.
func ProvideHTTPHandler(
	cfg *config.Config,
	l *applogger.Logger,
	source repository.ContentSource,
	riskUC *usecase.RiskUsecase,
	lessonUC *usecase.LessonUsecase,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	var raw fs.FS
	if fsSource, ok := source.(*internalrepo.FSContentSource); ok {
		raw = fsSource.FS()
	}
	return xhttp.Handlers{
		api.NewHealthHandler(source),
		api.NewRiskEchoHandler(l, riskUC, limiter),
		api.NewCurriculumEchoHandler(l, lessonUC),
		api.NewWizardWSHandler(l, riskUC, cfg.Server.CORSOrigins, cfg.Server.WSPingInterval),
		web.NewPagesHandler(l, riskUC, lessonUC, raw),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	templates *web.Templates,
	c cache.Service,
	producer *pkgkafka.Producer,
	limiter *ratelimit.Limiter,
) *server.App {
	return server.New(cfg, l, handler, templates, c, producer, limiter)
}
