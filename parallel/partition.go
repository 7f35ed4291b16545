package parallel

import "runtime"

// Partition 一个 worker 负责的连续区间 [Start, End)
type Partition struct {
	Worker int
	Start  int
	End    int
}

// Len 区间内的元素个数
func (p Partition) Len() int { return p.End - p.Start }

// HardwareConcurrency 当前进程可用的逻辑 CPU 数
func HardwareConcurrency() int {
	return runtime.NumCPU()
}

// Workers 计算实际启动的 worker 数量。
//
//	-1        使用 HardwareConcurrency
//	> count   截断为 count，不会启动空闲 worker
//	0         只允许在 count == 0 时出现
func Workers(threads, count int) (int, error) {
	if count < 0 {
		return 0, &InvalidRangeError{Threads: threads, End: count, Reason: "negative element count"}
	}
	if threads < -1 {
		return 0, &InvalidRangeError{Threads: threads, End: count, Reason: "negative thread count"}
	}
	if threads == -1 {
		threads = HardwareConcurrency()
	}
	if threads > count {
		threads = count
	}
	if threads == 0 && count > 0 {
		return 0, &InvalidRangeError{Threads: threads, End: count, Reason: "zero threads for a non-empty range"}
	}
	return threads, nil
}

// Chunk 返回第 worker 个分区。
// 前 workers-1 个分区各 count/workers 个元素，余数全部归最后一个分区。
func Chunk(count, workers, worker int) Partition {
	size := count / workers
	start := size * worker
	end := start + size
	if worker == workers-1 {
		end += count % workers
	}
	return Partition{Worker: worker, Start: start, End: end}
}

// Split 把 [0, count) 切成 workers 个互不重叠、首尾相接的分区
func Split(count, workers int) []Partition {
	return split(0, count, workers)
}

func split(begin, count, workers int) []Partition {
	if workers <= 0 {
		return nil
	}
	parts := make([]Partition, workers)
	for w := range parts {
		p := Chunk(count, workers, w)
		p.Start += begin
		p.End += begin
		parts[w] = p
	}
	return parts
}
