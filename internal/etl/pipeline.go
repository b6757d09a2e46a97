package etl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pipeline struct {
	extractor   *PostgresExtractor
	transformer *Transformer
	loader      *ElasticLoader
	logger      *zap.SugaredLogger
	interval    time.Duration
	timeout     time.Duration
}

func NewPipeline(
	extractor *PostgresExtractor,
	transformer *Transformer,
	loader *ElasticLoader,
	logger *zap.SugaredLogger,
	interval time.Duration,
	timeout time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
		timeout:     timeout,
	}
}

func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started")

	for {
		select {
		case <-ctx.Done():
			p.logger.Infow("ETL pipeline stopped")
			return
		case <-ticker.C:
			p.logger.Infow("Running ETL pipeline iteration")

			iterCtx := ctx
			cancel := func() {}
			if p.timeout > 0 {
				iterCtx, cancel = context.WithTimeout(ctx, p.timeout)
			}
			loaded, removed := p.RunOnce(iterCtx)
			cancel()

			p.logger.Infof("ETL pipeline completed, loaded %d docs, removed %d docs", loaded, removed)
		}
	}
}

// RunOnce - одна итерация: новые доступные объявления в индекс, снятые с продажи - из индекса.
// Возвращает число загруженных и удаленных документов.
func (p *Pipeline) RunOnce(ctx context.Context) (loaded, removed int) {
	// EXTRACT
	cars, err := p.extractor.ExtractNew(ctx)
	if err != nil {
		p.logger.Errorw("Extracting failed", zap.Error(err))
	} else if len(cars) == 0 {
		p.logger.Infow("No new cars to process")
	} else {
		// TRANSFORM
		docs := p.transformer.Transform(cars)

		// LOAD
		if err = p.loader.Load(ctx, docs); err != nil {
			p.logger.Errorw("Error while loading docs to ES", zap.Error(err))
		} else {
			loaded = len(docs)
		}
	}

	ids, err := p.extractor.ExtractDelisted(ctx)
	if err != nil {
		p.logger.Errorw("Extracting delisted cars failed", zap.Error(err))
		return loaded, 0
	}

	removed, err = p.loader.Unload(ctx, ids)
	if err != nil {
		p.logger.Errorw("Error while removing docs from ES", zap.Error(err))
	}

	return loaded, removed
}
