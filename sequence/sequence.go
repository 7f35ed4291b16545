// Package sequence 生成基准测试共享的只读整数序列。
//
// 序列在任何并行计算开始前一次性填充，之后所有 worker 只读不写。
package sequence

import (
	"errors"
	"fmt"
	"hash/crc64"
	"math/rand/v2"
	"time"
	"unsafe"
)

// ErrInvalidSize 序列长度或取值上限不合法
var ErrInvalidSize = errors.New("sequence: invalid size")

var crcTable = crc64.MakeTable(crc64.ECMA)

// Sequence 共享的只读序列，填充完成后不允许修改
type Sequence []int32

// Generate 生成 size 个 [0, maxValue) 的随机数。seed 为 0 时使用当前时间作为种子。
func Generate(size, maxValue int, seed int64) (Sequence, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidSize, size)
	}
	if maxValue < 1 || maxValue > 1<<31-1 {
		return nil, fmt.Errorf("%w: max value %d", ErrInvalidSize, maxValue)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))
	s := make(Sequence, size)
	for i := range s {
		s[i] = r.Int32N(int32(maxValue))
	}
	return s, nil
}

// Of 用给定的值构造序列，主要给测试用
func Of(values ...int32) Sequence {
	return Sequence(append([]int32(nil), values...))
}

// Len 元素个数
func (s Sequence) Len() int { return len(s) }

// Checksum 序列内容的 CRC-64，用来确认并行读取前后序列没有被改动
func (s Sequence) Checksum() uint64 {
	if len(s) == 0 {
		return 0
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
	return crc64.Checksum(b, crcTable)
}
