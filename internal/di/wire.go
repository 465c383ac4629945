//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"ProbabilityPit/pkg/config"
	"ProbabilityPit/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideContentSource,
		ProvideMarkdownRenderer,
		ProvideRateLimiter,

		// Use cases
		ProvideRiskUsecase,
		ProvideLessonUsecase,

		// Transport
		ProvideTemplates,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
