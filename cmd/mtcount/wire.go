//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"mtcount/bench"
	"mtcount/config"
)

// initRunner 由 wire 生成实现，见 wire_gen.go
func initRunner(ctx context.Context, c config.Config) (*bench.Runner, func(), error) {
	wire.Build(
		provideSequence, // config.Config → sequence.Sequence, error
		provideOutput,   // → io.Writer
		provideSinks,    // context.Context, config.Config, io.Writer → []report.Sink, func(), error
		bench.NewRunner, // config.Config, sequence.Sequence, io.Writer, []report.Sink → *bench.Runner, error
	)
	return nil, nil, nil
}
