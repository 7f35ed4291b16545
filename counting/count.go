package counting

import (
	"sync"
	"sync/atomic"

	"mtcount/parallel"
	"mtcount/sequence"
)

// CountSequential 单 goroutine 顺序遍历，作为其他策略的正确性基准
func CountSequential(seq sequence.Sequence, pred Predicate, _ int) (int64, error) {
	var count int64
	for _, v := range seq {
		if pred(v) {
			count++
		}
	}
	return count, nil
}

// CountMutex 每个命中元素都加一次全局锁，竞争最激烈
func CountMutex(seq sequence.Sequence, pred Predicate, threads int) (int64, error) {
	var (
		mu    sync.Mutex
		count int64
	)
	err := parallel.ForEach(threads, seq, func(v int32) {
		if pred(v) {
			mu.Lock()
			count++
			mu.Unlock()
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountAtomic 每个命中元素一次原子加，不加锁，但同步次数仍随命中数增长
func CountAtomic(seq sequence.Sequence, pred Predicate, threads int) (int64, error) {
	var count atomic.Int64
	err := parallel.ForEach(threads, seq, func(v int32) {
		if pred(v) {
			count.Add(1)
		}
	})
	if err != nil {
		return 0, err
	}
	return count.Load(), nil
}

// CountChunked 每个 worker 在自己的分区内本地计数，最后只加一次锁。
// 同步次数从 O(命中数) 降到 O(worker 数)。
func CountChunked(seq sequence.Sequence, pred Predicate, threads int) (int64, error) {
	workers, err := parallel.Workers(threads, len(seq))
	if err != nil {
		return 0, err
	}
	indexes := make([]int, workers)
	for i := range indexes {
		indexes[i] = i
	}

	var (
		mu    sync.Mutex
		count int64
	)
	err = parallel.ForEach(workers, indexes, func(worker int) {
		p := parallel.Chunk(len(seq), workers, worker)
		var local int64
		for _, v := range seq[p.Start:p.End] {
			if pred(v) {
				local++
			}
		}
		mu.Lock()
		count += local
		mu.Unlock()
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountPadded 每个 worker 独占一个 PaddedCount 槽位，计数过程完全无同步，
// 所有 worker join 之后由调用方顺序求和。
func CountPadded(seq sequence.Sequence, pred Predicate, threads int) (int64, error) {
	workers, err := parallel.Workers(threads, len(seq))
	if err != nil {
		return 0, err
	}
	slots := NewPaddedCounts(workers)
	err = parallel.For(workers, 0, len(seq), func(worker, index int) {
		if pred(seq[index]) {
			slots[worker].N++
		}
	})
	if err != nil {
		return 0, err
	}
	return SumPadded(slots), nil
}
