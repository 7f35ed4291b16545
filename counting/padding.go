package counting

import "golang.org/x/sys/cpu"

// PaddedCount 单个 worker 私有的计数槽。
// cpu.CacheLinePad 的大小随目标架构变化（amd64 为 64 字节，arm64 为 128 字节），
// 保证相邻两个槽的 N 不会落在同一条 cache line 上，避免 false sharing。
type PaddedCount struct {
	N int64
	_ cpu.CacheLinePad
}

// NewPaddedCounts 每个 worker 一个槽
func NewPaddedCounts(workers int) []PaddedCount {
	return make([]PaddedCount, workers)
}

// SumPadded 所有 worker join 之后由协调者顺序求和
func SumPadded(slots []PaddedCount) int64 {
	var total int64
	for i := range slots {
		total += slots[i].N
	}
	return total
}
