// Package bench 依次运行所有计数策略，校验结果一致，并生成报告。
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/zeromicro/go-zero/core/logx"

	"mtcount/config"
	"mtcount/counting"
	"mtcount/parallel"
	"mtcount/report"
	"mtcount/sequence"
	"mtcount/stopwatch"
)

var (
	// ErrCountMismatch 某个策略的结果与顺序基准不一致，或多轮结果不一致
	ErrCountMismatch = errors.New("bench: count mismatch")
	// ErrSequenceMutated 运行前后序列的 checksum 不同
	ErrSequenceMutated = errors.New("bench: sequence mutated")
)

// Runner 持有共享序列，按固定顺序运行策略
type Runner struct {
	threads    int
	rounds     int
	seq        sequence.Sequence
	pred       counting.Predicate
	strategies []counting.Strategy
	out        io.Writer
	sinks      []report.Sink
}

// NewRunner 按 c.Strategies 挑选策略，为空时运行全部策略
func NewRunner(c config.Config, seq sequence.Sequence, out io.Writer, sinks []report.Sink) (*Runner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	strategies := counting.Strategies()
	if len(c.Strategies) > 0 {
		strategies = nil
		for _, name := range c.Strategies {
			s, err := counting.Lookup(name)
			if err != nil {
				return nil, err
			}
			strategies = append(strategies, s)
		}
	}
	return &Runner{
		threads:    c.Threads,
		rounds:     c.Rounds,
		seq:        seq,
		pred:       counting.IsEven,
		strategies: strategies,
		out:        out,
		sinks:      sinks,
	}, nil
}

// Run 运行全部策略。每个策略每轮输出一行耗时和一行结果。
// ctx 只用于发布报告，已经开始的计数不会被取消。
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	fmt.Fprint(r.out, "Running Benchmark. Please wait...\n\n")

	rep := r.newReport()
	logx.Infow("benchmark started",
		logx.Field("runId", rep.RunID),
		logx.Field("size", rep.SequenceSize),
		logx.Field("threads", rep.Threads),
		logx.Field("strategies", len(r.strategies)),
	)

	sw := stopwatch.New(r.out)
	for _, s := range r.strategies {
		res := report.Result{Strategy: s.Name, Label: s.Label}
		for round := 0; round < r.rounds; round++ {
			sw.Start(s.Label)
			count, err := s.Count(r.seq, r.pred, r.threads)
			elapsed := sw.Stop()
			if err != nil {
				return nil, fmt.Errorf("bench: %s: %w", s.Name, err)
			}
			fmt.Fprintf(r.out, "total count:%d\n", count)

			if round > 0 && count != res.Count {
				return nil, fmt.Errorf("%w: %s round %d counted %d, round 0 counted %d",
					ErrCountMismatch, s.Name, round, count, res.Count)
			}
			res.Count = count
			res.Durations = append(res.Durations, elapsed)
		}
		if err := res.Summarize(); err != nil {
			logx.Errorw("summarize durations", logx.Field("strategy", s.Name), logx.Field("error", err))
		}
		rep.Results = append(rep.Results, res)
	}

	if err := r.verify(rep); err != nil {
		return nil, err
	}

	err := r.publish(ctx, rep)
	fmt.Fprint(r.out, "Done!\n")
	logx.Infow("benchmark finished", logx.Field("runId", rep.RunID))
	return rep, err
}

// verify 所有策略必须与顺序基准一致，序列必须没有被改动
func (r *Runner) verify(rep *report.Report) error {
	var (
		want  int64
		found bool
	)
	for _, res := range rep.Results {
		if res.Strategy == "sequential" {
			want, found = res.Count, true
			break
		}
	}
	if !found {
		want, _ = counting.CountSequential(r.seq, r.pred, 1)
	}
	for _, res := range rep.Results {
		if res.Count != want {
			return fmt.Errorf("%w: %s counted %d, sequential counted %d", ErrCountMismatch, res.Strategy, res.Count, want)
		}
	}
	if sum := r.seq.Checksum(); sum != rep.Checksum {
		return fmt.Errorf("%w: checksum %016x, was %016x", ErrSequenceMutated, sum, rep.Checksum)
	}
	return nil
}

// publish 逐个发布，单个 Sink 失败不影响其他 Sink
func (r *Runner) publish(ctx context.Context, rep *report.Report) error {
	var errs []error
	for _, s := range r.sinks {
		if err := s.Publish(ctx, rep); err != nil {
			logx.WithContext(ctx).Errorw("publish report", logx.Field("sink", fmt.Sprintf("%T", s)), logx.Field("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) newReport() *report.Report {
	host, _ := os.Hostname()
	threads, err := parallel.Workers(r.threads, len(r.seq))
	if err != nil {
		threads = r.threads
	}
	now := time.Now()
	return &report.Report{
		RunID:        strconv.FormatInt(now.UnixNano(), 36),
		StartedAt:    now.UTC(),
		Host:         host,
		CPU:          cpuid.CPU.BrandName,
		LogicalCores: cpuid.CPU.LogicalCores,
		CacheLine:    cpuid.CPU.CacheLine,
		Threads:      threads,
		SequenceSize: len(r.seq),
		Checksum:     r.seq.Checksum(),
	}
}
