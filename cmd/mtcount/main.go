// mtcount 对比几种并行计数方式的耗时。
//
// 不带参数运行时使用默认配置，依次运行全部策略，每个策略输出一行耗时和一行计数。
//
//	go run ./cmd/mtcount
//	go run ./cmd/mtcount -f etc/mtcount.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/zeromicro/go-zero/core/logx"

	"mtcount/config"
)

var configFile = flag.String("f", "", "the config file, built-in defaults when empty")

func main() {
	flag.Parse()

	if err := run(*configFile); err != nil {
		logx.Errorw("benchmark failed", logx.Field("error", err))
		logx.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	c, err := config.Load(path)
	if err != nil {
		return err
	}

	logx.DisableStat()
	logx.MustSetup(c.Log)
	// 标准输出只留给基准结果
	logx.SetWriter(logx.NewWriter(os.Stderr))
	defer logx.Close()

	if c.Diagnostics.Gops {
		if err := agent.Listen(agent.Options{Addr: c.Diagnostics.Addr}); err != nil {
			return fmt.Errorf("gops agent: %w", err)
		}
		defer agent.Close()
	}

	ctx := context.Background()
	runner, cleanup, err := initRunner(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = runner.Run(ctx)
	return err
}
