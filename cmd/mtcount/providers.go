package main

import (
	"context"
	"io"
	"os"

	"github.com/zeromicro/go-zero/core/logx"

	"mtcount/config"
	"mtcount/report"
	"mtcount/sequence"
)

// provideSequence 在任何计数开始之前一次性生成共享序列
func provideSequence(c config.Config) (sequence.Sequence, error) {
	logx.Infow("generating sequence", logx.Field("size", c.Size), logx.Field("maxValue", c.MaxValue))
	return sequence.Generate(c.Size, c.MaxValue, c.Seed)
}

func provideOutput() io.Writer {
	return os.Stdout
}

func provideSinks(ctx context.Context, c config.Config, out io.Writer) ([]report.Sink, func(), error) {
	sinks, err := report.NewSinks(ctx, c.Report, out)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := report.CloseAll(sinks); err != nil {
			logx.Errorw("close sinks", logx.Field("error", err))
		}
	}
	return sinks, cleanup, nil
}
