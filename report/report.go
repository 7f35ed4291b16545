// Package report 汇总一次基准测试的结果，并发布到一个或多个 Sink。
package report

import (
	"context"
	"errors"
	"time"

	"github.com/montanaflynn/stats"
)

// Report 一次运行的完整结果
type Report struct {
	RunID        string    `json:"run_id" bson:"run_id"`
	StartedAt    time.Time `json:"started_at" bson:"started_at"`
	Host         string    `json:"host" bson:"host"`
	CPU          string    `json:"cpu" bson:"cpu"`
	LogicalCores int       `json:"logical_cores" bson:"logical_cores"`
	CacheLine    int       `json:"cache_line" bson:"cache_line"`
	Threads      int       `json:"threads" bson:"threads"`
	SequenceSize int       `json:"sequence_size" bson:"sequence_size"`
	Checksum     uint64    `json:"checksum" bson:"-"`
	Results      []Result  `json:"results" bson:"results"`
}

// Result 单个策略的结果，Durations 按轮次顺序排列
type Result struct {
	Strategy  string          `json:"strategy" bson:"strategy"`
	Label     string          `json:"label" bson:"label"`
	Count     int64           `json:"count" bson:"count"`
	Rounds    int             `json:"rounds" bson:"rounds"`
	Durations []time.Duration `json:"durations" bson:"durations"`
	Min       time.Duration   `json:"min" bson:"min"`
	Max       time.Duration   `json:"max" bson:"max"`
	Mean      time.Duration   `json:"mean" bson:"mean"`
	Median    time.Duration   `json:"median" bson:"median"`
	StdDev    time.Duration   `json:"std_dev" bson:"std_dev"`
}

// Summarize 根据 Durations 计算 Min/Max/Mean/Median/StdDev
func (r *Result) Summarize() error {
	r.Rounds = len(r.Durations)
	if r.Rounds == 0 {
		return nil
	}
	data := make(stats.Float64Data, len(r.Durations))
	for i, d := range r.Durations {
		data[i] = float64(d)
	}

	var errs []error
	pick := func(f func(stats.Float64Data) (float64, error)) time.Duration {
		v, err := f(data)
		errs = append(errs, err)
		return time.Duration(v)
	}
	r.Min = pick(stats.Min)
	r.Max = pick(stats.Max)
	r.Mean = pick(stats.Mean)
	r.Median = pick(stats.Median)
	r.StdDev = pick(stats.StandardDeviation)
	return errors.Join(errs...)
}

// Sink 报告的去向
type Sink interface {
	Publish(ctx context.Context, r *Report) error
	Close() error
}
