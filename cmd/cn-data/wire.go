//go:build wireinject
// +build wireinject

package main

import (
	"cn-data/internal/app"
	"cn-data/internal/provider"

	"github.com/google/wire"
)

// InitializeApp builds app.App (config, provider, stores, resolver, engine) via Wire.
// Caller must call the returned cleanup when done.
func InitializeApp() (*app.App, func(), error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideLogger,
		app.ProvideTableSaver,
		app.ProvideDataStore,
		app.ProvideTushareProvider,
		wire.Bind(new(provider.DataProvider), new(*provider.TushareProvider)),
		app.ProvideResolver,
		app.ProvideAcquirer,
		app.ProvideEngine,
		wire.Struct(new(app.App), "*"),
	)
	return nil, nil, nil
}
