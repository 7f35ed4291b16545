// Package counting 对比几种并行计数方式在同步粒度上的取舍。
//
// 所有策略对同一序列、同一谓词必须得到和顺序遍历完全相同的结果，
// 区别只在于部分计数如何合并：
//
//	mutex       每个命中元素加一次全局锁
//	atomic      每个命中元素一次原子加
//	padded      每个 worker 写自己的 cache line 对齐槽位，join 后求和
//	sequential  单 goroutine 基准
//	chunked     每个 worker 先在本地计数，最后只加一次锁
package counting

import (
	"errors"
	"fmt"

	"mtcount/sequence"
)

// ErrUnknownStrategy 找不到指定名称的策略
var ErrUnknownStrategy = errors.New("counting: unknown strategy")

// Predicate 判断元素是否计入
type Predicate func(v int32) bool

// IsEven 偶数计入
func IsEven(v int32) bool { return v%2 == 0 }

// CountFunc 统计 seq 中满足 pred 的元素个数，threads 含义同 parallel.Workers
type CountFunc func(seq sequence.Sequence, pred Predicate, threads int) (int64, error)

// Strategy 一种计数方式
type Strategy struct {
	Name  string
	Label string
	Count CountFunc
}

// Strategies 按固定顺序返回全部策略
func Strategies() []Strategy {
	return []Strategy{
		{Name: "mutex", Label: "inc mutex", Count: CountMutex},
		{Name: "atomic", Label: "inc atomic", Count: CountAtomic},
		{Name: "padded", Label: "inc no lock", Count: CountPadded},
		{Name: "sequential", Label: "inc single thread", Count: CountSequential},
		{Name: "chunked", Label: "inc less mutex lock", Count: CountChunked},
	}
}

// Lookup 按名称查找策略
func Lookup(name string) (Strategy, error) {
	for _, s := range Strategies() {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
