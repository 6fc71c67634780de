package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kermartin/jurisearch/internal/config"
	"github.com/kermartin/jurisearch/internal/domain"
	logpkg "github.com/kermartin/jurisearch/internal/logger"
	precedentrepo "github.com/kermartin/jurisearch/internal/repository/precedent"
	openaiEmb "github.com/kermartin/jurisearch/internal/transport/openai"
)

// maxEmbedChars bounds the text sent to the embedding provider per record.
const maxEmbedChars = 8000

func main() {
	batchSize := flag.Int("batch", 50, "records per embedding batch")
	reindex := flag.Bool("reindex", false, "re-embed records that already have a vector")
	flag.Parse()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Embedding.APIKey == "" {
		logger.Fatal("embedding.api_key is required for indexing")
	}

	ctx := context.Background()

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Invalid database URL", zap.Error(err))
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	repo := precedentrepo.New(
		pool,
		time.Duration(cfg.Database.QueryTimeoutSec)*time.Second,
		cfg.Retrieval.CandidateCap,
	)
	if err := repo.Ping(ctx); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	embedder := openaiEmb.NewEmbedder(openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Timeout:    time.Duration(cfg.Embedding.TimeoutSec) * time.Second,
	})

	total, err := repo.CountRecords(ctx)
	if err != nil {
		logger.Fatal("Failed to count records", zap.Error(err))
	}
	logger.Info("Starting embedding indexer",
		zap.String("model", embedder.Model()),
		zap.Int("total_records", total),
		zap.Int("batch_size", *batchSize),
		zap.Bool("reindex", *reindex),
	)

	indexed, failed := 0, 0
	for offset := 0; ; {
		records, err := repo.FetchIndexBatch(ctx, offset, *batchSize, !*reindex)
		if err != nil {
			logger.Fatal("Failed to fetch batch", zap.Error(err), zap.Int("offset", offset))
		}
		if len(records) == 0 {
			break
		}

		texts := make([]string, len(records))
		for i := range records {
			texts[i] = embeddingText(&records[i])
		}

		stored := 0
		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			logger.Error("Embedding batch failed, skipping",
				zap.Error(err), zap.Int("offset", offset), zap.Int("size", len(records)))
			failed += len(records)
		} else {
			for i := range records {
				if err := repo.UpsertEmbedding(ctx, records[i].ID, vectors[i]); err != nil {
					logger.Error("Failed to store vector",
						zap.Error(err), zap.Int64("id", records[i].ID))
					failed++
					continue
				}
				indexed++
				stored++
			}
		}

		// In only-missing mode stored rows drop out of the next fetch;
		// advance past the rows that are still missing.
		if *reindex {
			offset += len(records)
		} else {
			offset += len(records) - stored
		}
		logger.Info("Batch indexed", zap.Int("indexed", indexed), zap.Int("failed", failed))
	}

	logger.Info("Indexing finished",
		zap.Int("indexed", indexed),
		zap.Int("failed", failed),
		zap.Int("total_records", total),
	)
}

// embeddingText builds the per-record text sent to the provider: title,
// abstract and reasoning, truncated to keep requests bounded.
func embeddingText(r *domain.PrecedentRecord) string {
	var b strings.Builder
	b.WriteString(r.Title)
	if r.Abstract != "" {
		b.WriteString("\n")
		b.WriteString(r.Abstract)
	}
	if r.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(r.Reasoning)
	}
	text := b.String()
	if len(text) > maxEmbedChars {
		text = text[:maxEmbedChars]
	}
	return text
}
