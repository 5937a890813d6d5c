//go:build wireinject
// +build wireinject

package di

import (
	"VaderBoot/pkg/config"
	"VaderBoot/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,
		ProvidePolicy,

		// Infrastructure clients
		ProvideMarketData,
		ProvideKafkaProducer,
		ProvideRedisClient,

		// Delivery and use cases
		ProvideNotifier,
		ProvideFundamentalAnalyzer,
		ProvideSignalEngine,

		// HTTP
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
