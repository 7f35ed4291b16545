package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
)

// JSONSink 把整个报告编码成缩进的 JSON 写到 w
type JSONSink struct {
	w      io.Writer
	closer io.Closer
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// NewJSONFileSink 写到 path，文件已存在时覆盖
func NewJSONFileSink(path string) (*JSONSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: create %s: %w", path, err)
	}
	return &JSONSink{w: f, closer: f}, nil
}

func (s *JSONSink) Publish(_ context.Context, r *Report) error {
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	data = append(data, '\n')
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("report: write json: %w", err)
	}
	return nil
}

func (s *JSONSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
