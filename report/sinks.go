package report

import (
	"context"
	"errors"
	"io"

	"mtcount/config"
)

// NewSinks 根据配置创建 Sink，默认配置下返回空列表。
// 创建失败时关闭已创建的 Sink。
func NewSinks(ctx context.Context, c config.ReportConf, out io.Writer) ([]Sink, error) {
	var sinks []Sink
	fail := func(err error) ([]Sink, error) {
		return nil, errors.Join(err, CloseAll(sinks))
	}

	if c.Text {
		sinks = append(sinks, NewTextSink(out))
	}
	if c.JSONFile != "" {
		s, err := NewJSONFileSink(c.JSONFile)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	}
	if len(c.Kafka.Brokers) > 0 {
		sinks = append(sinks, NewKafkaSink(c.Kafka.Brokers, c.Kafka.Topic))
	}
	if c.Mongo.URI != "" {
		s, err := NewMongoSink(ctx, c.Mongo.URI, c.Mongo.Database, c.Mongo.Collection)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

// CloseAll 关闭全部 Sink，返回所有错误
func CloseAll(sinks []Sink) error {
	var errs []error
	for _, s := range sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
