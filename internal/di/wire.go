//go:build wireinject
// +build wireinject

package di

import (
	"FinWeave/pkg/config"
	"FinWeave/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Source and export backends
		ProvidePriceSource,
		ProvideExporter,

		// Use cases
		ProvideCollector,
		ProvideCleaner,
		ProvidePipeline,

		// HTTP surface
		ProvideHandler,

		// Application
		ProvideApp,
	)
	return &server.App{}, nil
}
