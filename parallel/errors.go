package parallel

import (
	"errors"
	"fmt"
)

// ErrInvalidRange 区间或线程数不合法，调用方可用 errors.Is 判断
var ErrInvalidRange = errors.New("parallel: invalid range")

// InvalidRangeError 记录出错时的线程数与区间，在启动任何 worker 之前返回
type InvalidRangeError struct {
	Threads int
	Begin   int
	End     int
	Reason  string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("parallel: invalid range [%d, %d) with %d threads: %s", e.Begin, e.End, e.Threads, e.Reason)
}

func (e *InvalidRangeError) Is(target error) bool { return target == ErrInvalidRange }

// WorkerPanicError 某个 worker 在执行调用方函数时 panic。
// 只有在所有 worker 都 join 之后才会返回给调用方。
type WorkerPanicError struct {
	Worker int
	Start  int
	End    int
	Value  any
	Stack  []byte
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("parallel: worker %d panicked on [%d, %d): %v", e.Worker, e.Start, e.End, e.Value)
}

// Unwrap 当 panic 的值本身是 error 时暴露出来
func (e *WorkerPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
