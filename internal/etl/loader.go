package etl

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vehiql-main/internal/types/elastic"
	myErr "vehiql-main/internal/types/errors"

	"go.uber.org/zap"
)

// Indexer - то, что лоадеру нужно от поискового индекса
type Indexer interface {
	BulkIndex(ctx context.Context, docs []elastic.CarDoc) error
	DeleteCar(ctx context.Context, id string) error
}

type ElasticLoader struct {
	Service Indexer
	Logger  *zap.SugaredLogger
	DB      *sql.DB
}

func NewElasticLoader(service Indexer, logger *zap.SugaredLogger, db *sql.DB) *ElasticLoader {
	return &ElasticLoader{
		Service: service,
		Logger:  logger,
		DB:      db,
	}
}

// Load - загружает подготовленные CarDoc в индекс ElasticSearch и помечает их в PostgreSQL
// Принимает массив CarDoc, возвращает error
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.CarDoc) error {
	if len(docs) == 0 {
		l.Logger.Infow("No documents to load")
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	err := l.Service.BulkIndex(ctx, docs)
	if err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	l.Logger.Infow("Successfully indexed documents", "count", len(docs))

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	return l.mark(ctx, ids, true)
}

// Unload - убирает снятые с продажи объявления из индекса и возвращает, сколько удалось убрать.
// Объявление, которое не удалось удалить, остается помеченным и попадет в следующую итерацию.
func (l *ElasticLoader) Unload(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	removed := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := l.Service.DeleteCar(ctx, id); err != nil {
			l.Logger.Warnw("Failed to remove document from index", "doc_id", id, zap.Error(err))
			continue
		}
		removed = append(removed, id)
	}

	if len(removed) == 0 {
		return 0, myErr.ErrIndexing
	}

	if err := l.mark(ctx, removed, false); err != nil {
		return 0, err
	}

	return len(removed), nil
}

func (l *ElasticLoader) mark(ctx context.Context, ids []string, indexed bool) error {
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, indexed)

	// Динамическая генерация плейсхолдеров: $2, $3, ...
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}

	query := fmt.Sprintf(
		"UPDATE cars SET indexed = $1 WHERE id IN (%s)",
		strings.Join(placeholders, ", "),
	)

	_, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		l.Logger.Errorw("Failed to update documents in PostgreSQL", zap.Error(err))
		return myErr.ErrDBInternal
	}

	return nil
}
