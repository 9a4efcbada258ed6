//go:build wireinject
// +build wireinject

package di

import (
	"OddsPull/pkg/config"
	"OddsPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvidePublisher,
		ProvideRateLimiter,
		ProvideHTTPClient,

		// Repositories
		ProvideGameStore,
		ProvideScoreboardSource,
		ProvideOddsFeed,

		// Domain services
		ProvideEngine,
		ProvideRegistry,
		ProvideHub,
		ProvidePipeline,

		// Use cases
		ProvideGamesUseCase,
		ProvideScanUseCase,
		ProvideCollector,

		// HTTP
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
