// Package bootstrap wires configuration, infrastructure and use cases
// into a runnable application.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jkatiyar/ai-enterprise-search/internal/config"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/ports"
	"github.com/jkatiyar/ai-enterprise-search/internal/core/usecase"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/chunking"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/extractor"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/llm/ollama"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/queue/nats"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/repository/postgres"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/resilience"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/storage/localfs"
	"github.com/jkatiyar/ai-enterprise-search/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue
	Repo  ports.DocumentRepository
	Store ports.StructuredDocumentStore

	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	EDUEUC    ports.EDUEQueryService
	HybridUC  ports.HybridQueryService
	RAGUC     ports.RAGQueryService

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	store := postgres.NewSectionStore(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel).WithExecutor(executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection).WithExecutor(executor)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	pages := extractor.NewExtractor(storage)

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, pages, store, chunker, embedder, vectorDB)
	ragUC := usecase.NewRAGQueryUseCase(embedder, vectorDB, generator, cfg.RAGScoreThreshold)
	edueUC := usecase.NewEDUEQueryUseCase(store)
	hybridUC := usecase.NewHybridQueryUseCase(store, ragUC, cfg.HybridEDUEThreshold)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,
		Store:  store,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		EDUEUC:    edueUC,
		HybridUC:  hybridUC,
		RAGUC:     ragUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
