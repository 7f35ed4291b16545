package report

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// TextSink 以表格形式输出每个策略的统计
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Publish(_ context.Context, r *Report) error {
	fmt.Fprintf(s.w, "\nrun %s on %s (%s, %d logical cores, %d byte cache line)\n",
		r.RunID, r.Host, r.CPU, r.LogicalCores, r.CacheLine)
	fmt.Fprintf(s.w, "sequence size %d, threads %d, checksum %016x\n\n", r.SequenceSize, r.Threads, r.Checksum)

	tw := tabwriter.NewWriter(s.w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "strategy\tcount\trounds\tmin\tmedian\tmean\tmax\tstddev\t")
	for _, res := range r.Results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%v\t%v\t%v\t%v\t\n",
			res.Label, res.Count, res.Rounds,
			round(res.Min), round(res.Median), round(res.Mean), round(res.Max), round(res.StdDev))
	}
	return tw.Flush()
}

func (s *TextSink) Close() error { return nil }

func round(d time.Duration) time.Duration { return d.Round(time.Microsecond) }
