// Package stopwatch 给每个计数策略计时，并把耗时写到文本输出。
package stopwatch

import (
	"fmt"
	"io"
	"time"

	"github.com/zeromicro/go-zero/core/timex"
)

// Stopwatch 单个计时器，不是并发安全的，由协调 goroutine 独占使用
type Stopwatch struct {
	w       io.Writer
	label   string
	start   time.Duration
	running bool
	elapsed time.Duration
}

// New 计时结果写到 w
func New(w io.Writer) *Stopwatch {
	return &Stopwatch{w: w}
}

// Start 以 label 开始计时，重复调用会重新开始
func (s *Stopwatch) Start(label string) {
	s.label = label
	s.running = true
	s.start = timex.Now()
}

// Stop 结束计时并输出一行 "<label> timing: <elapsed>"。
// 未 Start 时返回 0 且不输出。
func (s *Stopwatch) Stop() time.Duration {
	if !s.running {
		return 0
	}
	s.elapsed = timex.Since(s.start)
	s.running = false
	fmt.Fprintf(s.w, "%s timing: %v\n", s.label, s.elapsed.Round(time.Microsecond))
	return s.elapsed
}

// Elapsed 最近一次 Stop 得到的耗时
func (s *Stopwatch) Elapsed() time.Duration { return s.elapsed }

// Label 当前或最近一次计时的标签
func (s *Stopwatch) Label() string { return s.label }
