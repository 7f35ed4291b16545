// Package config 基准测试的配置，不指定配置文件时全部使用默认值。
package config

import (
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("config: invalid")

type (
	// Config 顶层配置
	Config struct {
		Log         logx.LogConf
		Size        int      `json:",default=50000000"`
		MaxValue    int      `json:",default=20"`
		Seed        int64    `json:",optional"`
		Threads     int      `json:",default=-1"`
		Rounds      int      `json:",default=1"`
		Strategies  []string `json:",optional"`
		Report      ReportConf
		Diagnostics DiagConf
	}

	// ReportConf 结果输出，全部可选，默认只有标准输出上的逐行结果
	ReportConf struct {
		Text     bool   `json:",default=false"`
		JSONFile string `json:",optional"`
		Kafka    KafkaConf
		Mongo    MongoConf
	}

	// KafkaConf Brokers 为空时不发送
	KafkaConf struct {
		Brokers []string `json:",optional"`
		Topic   string   `json:",default=mtcount-results"`
	}

	// MongoConf URI 为空时不写入
	MongoConf struct {
		URI        string `json:",optional"`
		Database   string `json:",default=mtcount"`
		Collection string `json:",default=reports"`
	}

	// DiagConf gops 诊断 agent
	DiagConf struct {
		Gops bool   `json:",default=false"`
		Addr string `json:",optional"`
	}
)

// Load path 为空时只填充默认值，否则从文件加载（支持 yaml/json/toml）
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		if err := conf.FillDefault(&c); err != nil {
			return c, fmt.Errorf("config: fill defaults: %w", err)
		}
	} else if err := conf.Load(path, &c); err != nil {
		return c, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate 检查取值范围
func (c Config) Validate() error {
	switch {
	case c.Size < 0:
		return fmt.Errorf("%w: Size %d < 0", ErrInvalidConfig, c.Size)
	case c.MaxValue < 1:
		return fmt.Errorf("%w: MaxValue %d < 1", ErrInvalidConfig, c.MaxValue)
	case c.Threads < -1:
		return fmt.Errorf("%w: Threads %d < -1", ErrInvalidConfig, c.Threads)
	case c.Rounds < 1:
		return fmt.Errorf("%w: Rounds %d < 1", ErrInvalidConfig, c.Rounds)
	}
	return nil
}
