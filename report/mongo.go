package report

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type documentInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// mongoReport BSON 没有无符号 64 位整数，checksum 按位存成 int64
type mongoReport struct {
	Report   `bson:",inline"`
	Checksum int64 `bson:"checksum"`
}

// MongoSink 每次运行一条文档
type MongoSink struct {
	client *mongo.Client
	coll   documentInserter
}

// NewMongoSink mongo.Connect 不会立即建立连接，服务不可用时在 Publish 时报错
func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("report: mongo connect: %w", err)
	}
	return &MongoSink{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoSink) Publish(ctx context.Context, r *Report) error {
	doc := mongoReport{Report: *r, Checksum: int64(r.Checksum)}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("report: mongo insert: %w", err)
	}
	return nil
}

func (s *MongoSink) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}
