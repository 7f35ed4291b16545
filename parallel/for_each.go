// Package parallel 静态切分区间并用固定数量的 goroutine 并行执行。
//
// 每次调用都会新建 worker，并在返回前全部 join，没有 goroutine 能活过调用本身。
// 线程数为 1 时直接在调用方 goroutine 上顺序执行，不会创建新的 goroutine。
package parallel

import (
	"errors"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// ForEach 对 items 的每个元素调用 f。
// 同一分区内按下标升序调用，不同分区之间并发执行、没有顺序保证。
func ForEach[T any](threads int, items []T, f func(item T)) error {
	n, err := Workers(threads, len(items))
	if err != nil {
		return err
	}
	return run(Split(len(items), n), func(p Partition) {
		for _, item := range items[p.Start:p.End] {
			f(item)
		}
	})
}

// ForEachIndexed 同 ForEach，额外传入 worker 序号和元素在 items 中的绝对下标，
// 方便调用方按 worker 维护私有状态。
func ForEachIndexed[T any](threads int, items []T, f func(item T, worker, index int)) error {
	n, err := Workers(threads, len(items))
	if err != nil {
		return err
	}
	return run(Split(len(items), n), func(p Partition) {
		for i := p.Start; i < p.End; i++ {
			f(items[i], p.Worker, i)
		}
	})
}

// For 对 [begin, end) 中的每个下标调用 f(worker, index)，只分发下标，不访问元素。
func For(threads, begin, end int, f func(worker, index int)) error {
	if begin > end {
		return &InvalidRangeError{Threads: threads, Begin: begin, End: end, Reason: "begin is after end"}
	}
	n, err := Workers(threads, end-begin)
	if err != nil {
		var rangeErr *InvalidRangeError
		if errors.As(err, &rangeErr) {
			rangeErr.Begin, rangeErr.End = begin, end
		}
		return err
	}
	return run(split(begin, end-begin, n), func(p Partition) {
		for i := p.Start; i < p.End; i++ {
			f(p.Worker, i)
		}
	})
}

// run 每个分区一个 goroutine，等所有 goroutine 结束后再汇总 panic。
// 每个 worker 只写自己的 errs 槽位，不需要加锁。
func run(parts []Partition, body func(p Partition)) error {
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return guard(parts[0], body)
	}

	errs := make([]error, len(parts))
	var g errgroup.Group
	for _, p := range parts {
		g.Go(func() error {
			errs[p.Worker] = guard(p, body)
			return nil // 不返回错误，保证其他 worker 照常跑完
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func guard(p Partition, body func(p Partition)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerPanicError{
				Worker: p.Worker,
				Start:  p.Start,
				End:    p.End,
				Value:  r,
				Stack:  debug.Stack(),
			}
		}
	}()
	body(p)
	return nil
}
