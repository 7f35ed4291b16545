package bench

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"mtcount/config"
	"mtcount/counting"
	"mtcount/report"
	"mtcount/sequence"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	c, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRunAllStrategies(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRunner(testConfig(t), sequence.Of(4, 7, 2, 9, 10, 13), &out, nil)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	strategies := counting.Strategies()
	if len(rep.Results) != len(strategies) {
		t.Fatalf("got %d results, want %d", len(rep.Results), len(strategies))
	}
	for i, res := range rep.Results {
		if res.Strategy != strategies[i].Name {
			t.Errorf("result %d is %s, want %s", i, res.Strategy, strategies[i].Name)
		}
		if res.Count != 3 {
			t.Errorf("%s counted %d, want 3", res.Strategy, res.Count)
		}
		if res.Rounds != 1 || len(res.Durations) != 1 {
			t.Errorf("%s rounds = %d", res.Strategy, res.Rounds)
		}
	}

	text := out.String()
	if n := strings.Count(text, "total count:3\n"); n != len(strategies) {
		t.Errorf("found %d result lines, want %d:\n%s", n, len(strategies), text)
	}
	for _, s := range strategies {
		if !strings.Contains(text, s.Label+" timing: ") {
			t.Errorf("missing timing line for %s:\n%s", s.Label, text)
		}
	}
	if !strings.HasPrefix(text, "Running Benchmark.") || !strings.HasSuffix(text, "Done!\n") {
		t.Errorf("unexpected framing:\n%s", text)
	}
}

func TestRunSelectedStrategiesAndRounds(t *testing.T) {
	c := testConfig(t)
	c.Strategies = []string{"chunked", "atomic"}
	c.Rounds = 3
	c.Threads = 4

	seq, err := sequence.Generate(10000, 20, 11)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := counting.CountSequential(seq, counting.IsEven, 1)

	var out bytes.Buffer
	r, err := NewRunner(c, seq, &out, nil)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Results) != 2 || rep.Results[0].Strategy != "chunked" || rep.Results[1].Strategy != "atomic" {
		t.Fatalf("results = %+v", rep.Results)
	}
	for _, res := range rep.Results {
		if res.Count != want || res.Rounds != 3 {
			t.Errorf("%s: count %d rounds %d, want %d and 3", res.Strategy, res.Count, res.Rounds, want)
		}
	}
	if rep.Threads != 4 || rep.SequenceSize != 10000 || rep.Checksum != seq.Checksum() {
		t.Errorf("report header %+v", rep)
	}
	if n := strings.Count(out.String(), "total count:"); n != 6 {
		t.Errorf("found %d result lines, want 6", n)
	}
}

func TestNewRunnerRejectsUnknownStrategy(t *testing.T) {
	c := testConfig(t)
	c.Strategies = []string{"interlocked"}
	if _, err := NewRunner(c, sequence.Of(1), &bytes.Buffer{}, nil); !errors.Is(err, counting.ErrUnknownStrategy) {
		t.Errorf("NewRunner() error = %v, want ErrUnknownStrategy", err)
	}
}

func TestNewRunnerRejectsInvalidConfig(t *testing.T) {
	c := testConfig(t)
	c.Rounds = 0
	if _, err := NewRunner(c, sequence.Of(1), &bytes.Buffer{}, nil); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("NewRunner() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRunDetectsWrongStrategy(t *testing.T) {
	r, err := NewRunner(testConfig(t), sequence.Of(4, 7, 2), &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.strategies = append(r.strategies, counting.Strategy{
		Name:  "broken",
		Label: "inc broken",
		Count: func(seq sequence.Sequence, _ counting.Predicate, _ int) (int64, error) {
			return int64(len(seq)), nil
		},
	})
	if _, err := r.Run(context.Background()); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("Run() error = %v, want ErrCountMismatch", err)
	}
}

func TestRunDetectsMutation(t *testing.T) {
	r, err := NewRunner(testConfig(t), sequence.Of(4, 7, 2), &bytes.Buffer{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.strategies = []counting.Strategy{{
		Name:  "sequential",
		Label: "inc writer",
		Count: func(seq sequence.Sequence, pred counting.Predicate, threads int) (int64, error) {
			n, err := counting.CountSequential(seq, pred, threads)
			seq[0] += 2 // 奇偶不变，计数结果仍然正确
			return n, err
		},
	}}
	if _, err := r.Run(context.Background()); !errors.Is(err, ErrSequenceMutated) {
		t.Errorf("Run() error = %v, want ErrSequenceMutated", err)
	}
}

func TestRunPublishesToEverySink(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := NewMockSink(ctrl)
	ok := NewMockSink(ctrl)

	sentinel := errors.New("sink down")
	failing.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(sentinel).Times(1)
	ok.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rep *report.Report) error {
		if len(rep.Results) != len(counting.Strategies()) {
			t.Errorf("published %d results", len(rep.Results))
		}
		return nil
	}).Times(1)

	r, err := NewRunner(testConfig(t), sequence.Of(4, 7, 2, 9, 10, 13), &bytes.Buffer{}, []report.Sink{failing, ok})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := r.Run(context.Background())
	if !errors.Is(err, sentinel) {
		t.Errorf("Run() error = %v, want %v", err, sentinel)
	}
	if rep == nil {
		t.Fatal("report should be returned even when a sink fails")
	}
}
