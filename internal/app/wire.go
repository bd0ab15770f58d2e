//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"scribe/internal/app/metrics"
	"scribe/internal/config"
)

var applicationSet = wire.NewSet(
	provideLogger,
	metrics.New,
	provideCSVStore,
	providePublisher,
	provideRecordStore,
	provideArchiver,
	provideUploads,
	provideTranscriber,
	provideRegistry,
	provideSelector,
	provideAgent,
	newApplication,
)

// InitializeApplication builds the full object graph from cfg. The cleanup
// function flushes the logger and closes the event publisher.
func InitializeApplication(ctx context.Context, cfg *config.Config) (*Application, func(), error) {
	wire.Build(applicationSet)
	return nil, nil, nil
}
