package app

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// NewRedis подключается к Redis и проверяет соединение
func NewRedis(ctx context.Context, c ConfigRedis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close() // nolint:errcheck
		return nil, err
	}

	return client, nil
}

// NewMongo подключается к MongoDB и возвращает базу для картинок
func NewMongo(ctx context.Context, c ConfigMongo) (*mongo.Client, *mongo.Database, error) {
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, nil, err
	}

	if err = client.Ping(connCtx, nil); err != nil {
		_ = client.Disconnect(context.Background()) // nolint:errcheck
		return nil, nil, err
	}

	return client, client.Database(c.Database), nil
}

// NewElastic создает клиента Elasticsearch. Соединение проверяется при первом запросе.
func NewElastic(c ConfigES) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.Addresses,
	})
}
