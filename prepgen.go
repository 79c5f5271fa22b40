package prepgen

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/siherrmann/prepgen/core/generation"
	"github.com/siherrmann/prepgen/core/pipeline"
	"github.com/siherrmann/prepgen/core/qa"
	"github.com/siherrmann/prepgen/core/retrieval"
	"github.com/siherrmann/prepgen/database"
	"github.com/siherrmann/prepgen/helper"
	"github.com/siherrmann/prepgen/model"
	"github.com/siherrmann/prepgen/session"
	loadSql "github.com/siherrmann/prepgen/sql"
)

// Prepgen provides a unified interface to document ingestion, retrieval,
// content generation and the quality-assured content bank
type Prepgen struct {
	DB        *helper.Database
	Documents *database.DocumentsDBHandler
	Chunks    *database.ChunksDBHandler
	Items     *database.ItemsDBHandler
	Pipeline  *pipeline.Pipeline // Optional chunking pipeline
	Retrieval *retrieval.Engine  // Retrieval engine for context assembly
	Generator *generation.Orchestrator
	QA        *qa.Engine
	Sessions  *session.Store
	// Logging
	log *slog.Logger
}

// NewPrepgen creates a new Prepgen instance with all handlers initialized.
// An empty generation API key is not an error; the generator degrades to
// its deterministic mock producer.
func NewPrepgen(ctx context.Context, dbConfig *helper.DatabaseConfiguration, genConfig *generation.Config, embeddingDim int) (*Prepgen, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("prepgen", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// Create all handlers in the correct order (documents first, then chunks)
	// force=false to not reload if functions already exist
	documents, err := database.NewDocumentsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create documents handler", err)
	}

	chunks, err := database.NewChunksDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create chunks handler", err)
	}

	items, err := database.NewItemsDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create items handler", err)
	}

	generator, err := generation.NewOrchestrator(ctx, genConfig, logger)
	if err != nil {
		return nil, helper.NewError("create generation orchestrator", err)
	}

	return &Prepgen{
		DB:        db,
		Documents: documents,
		Chunks:    chunks,
		Items:     items,
		Generator: generator,
		QA:        qa.NewEngine(items, logger),
		Sessions:  session.NewStore(),
		log:       logger,
	}, nil
}

// Close closes the database connection
func (p *Prepgen) Close() error {
	if p.DB != nil && p.DB.Instance != nil {
		return p.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the chunking pipeline for document processing and
// rebuilds the retrieval engine around the pipeline's embedder
func (p *Prepgen) SetPipeline(pl *pipeline.Pipeline) {
	p.Pipeline = pl
	p.Retrieval = retrieval.NewEngine(p.Chunks, pl.Embedder)
}

// UseDefaultPipeline sets up the default chunking and embedding pipeline.
// This uses WindowChunker with 500 char windows and 50 char overlap,
// and DefaultEmbedder with the all-MiniLM-L6-v2 model (384 dimensions)
func (p *Prepgen) UseDefaultPipeline() error {
	chunker := pipeline.WindowChunker(500, 50)
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	p.SetPipeline(pipeline.NewPipeline(chunker, embedder))
	return nil
}

// IngestDocument processes a document by:
// 1. Inserting the document metadata (without content)
// 2. Processing the content into chunks using the pipeline
// 3. Inserting all chunks with the document ID
// The document's Content field is used for processing but not stored in the
// database. Returns the number of chunks inserted and any error encountered.
func (p *Prepgen) IngestDocument(doc *model.Document) (int, error) {
	if p.Pipeline == nil {
		return 0, helper.NewError("ingest document", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	if doc.Content == "" {
		return 0, helper.NewError("ingest document", fmt.Errorf("document content is empty"))
	}

	// Store content temporarily and clear it before DB insert
	content := doc.Content
	doc.Content = ""

	// Insert document metadata
	if err := p.Documents.InsertDocument(doc); err != nil {
		return 0, helper.NewError("insert document", err)
	}

	p.log.Info("Inserted document", slog.String("document_id", doc.RID.String()), slog.String("title", doc.Title))

	// Process content into chunks
	chunks, err := p.Pipeline.Process(content)
	if err != nil {
		return 0, helper.NewError("process chunks", err)
	}

	p.log.Info("Processed document into chunks", slog.Int("num_chunks", len(chunks)), slog.String("document_id", doc.RID.String()))

	// Insert all chunks
	for i, chunk := range chunks {
		chunk.DocumentID = doc.ID
		if err := p.Chunks.InsertChunk(chunk); err != nil {
			return i, helper.NewError(fmt.Sprintf("insert chunk %d", i), err)
		}
	}

	return len(chunks), nil
}

// Search performs vector similarity search over the ingested chunks
func (p *Prepgen) Search(ctx context.Context, query string, config *model.QueryConfig) ([]*model.RetrievalResult, error) {
	if p.Retrieval == nil {
		return nil, helper.NewError("vector search", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}

	return p.Retrieval.Retrieve(ctx, query, config)
}

// BuildContext retrieves the chunks most similar to the query and assembles
// them into a citation-annotated context string for generation
func (p *Prepgen) BuildContext(ctx context.Context, query string, config *model.QueryConfig) (*model.ContextResult, error) {
	if p.Retrieval == nil {
		return nil, helper.NewError("build context", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}

	return p.Retrieval.BuildContext(ctx, query, config)
}

// contextFor assembles retrieval context for a generation query. Without a
// pipeline the generator runs on an empty context, which the prompts handle.
func (p *Prepgen) contextFor(ctx context.Context, query string, config *model.QueryConfig) (string, error) {
	if p.Retrieval == nil {
		return "", nil
	}

	result, err := p.Retrieval.BuildContext(ctx, query, config)
	if err != nil {
		return "", err
	}
	return result.Context, nil
}

// GenerateQuiz retrieves context for the topic and generates one validated
// multiple-choice question
func (p *Prepgen) GenerateQuiz(ctx context.Context, topic string, config *model.QueryConfig) (*model.Item, error) {
	contextText, err := p.contextFor(ctx, topic, config)
	if err != nil {
		return nil, helper.NewError("build quiz context", err)
	}

	return p.Generator.QuizQuestion(ctx, topic, contextText)
}

// GenerateFlashcard retrieves context for the subject and generates one
// flashcard of the given card type
func (p *Prepgen) GenerateFlashcard(ctx context.Context, subject string, cardType string, config *model.QueryConfig) (*model.Item, error) {
	contextText, err := p.contextFor(ctx, subject, config)
	if err != nil {
		return nil, helper.NewError("build flashcard context", err)
	}

	return p.Generator.Flashcard(ctx, subject, cardType, contextText)
}

// Tutor answers a free-form question about the subject, grounded on the
// retrieved context
func (p *Prepgen) Tutor(ctx context.Context, subject string, userInput string, config *model.QueryConfig) (string, error) {
	contextText, err := p.contextFor(ctx, userInput, config)
	if err != nil {
		return "", helper.NewError("build tutor context", err)
	}

	return p.Generator.Tutor(ctx, subject, userInput, contextText)
}

// Review grades a user's answer to a question against the retrieved context
func (p *Prepgen) Review(ctx context.Context, question string, userAnswer string, config *model.QueryConfig) (*model.Item, error) {
	contextText, err := p.contextFor(ctx, question, config)
	if err != nil {
		return nil, helper.NewError("build review context", err)
	}

	return p.Generator.Review(ctx, question, userAnswer, contextText)
}

// FillQuizBank fills the persistent quiz bank for the subject up to target
// items, generating at most maxAttempts candidates. Context is retrieved once
// per run and shared across candidates.
func (p *Prepgen) FillQuizBank(ctx context.Context, subject string, target int, maxAttempts int) ([]*model.Item, *model.GenerationStats, error) {
	contextText, err := p.contextFor(ctx, subject, nil)
	if err != nil {
		return nil, nil, helper.NewError("build quiz bank context", err)
	}

	produce := func(ctx context.Context) (*model.Item, error) {
		return p.Generator.QuizQuestion(ctx, subject, contextText)
	}

	return p.QA.FillBank(ctx, model.ItemKindQuiz, subject, target, produce, maxAttempts)
}

// FillFlashcardBank fills the persistent flashcard bank for the subject up to
// target items, generating at most maxAttempts candidates of the given card
// type. Context is retrieved once per run and shared across candidates.
func (p *Prepgen) FillFlashcardBank(ctx context.Context, subject string, cardType string, target int, maxAttempts int) ([]*model.Item, *model.GenerationStats, error) {
	contextText, err := p.contextFor(ctx, subject, nil)
	if err != nil {
		return nil, nil, helper.NewError("build flashcard bank context", err)
	}

	produce := func(ctx context.Context) (*model.Item, error) {
		return p.Generator.Flashcard(ctx, subject, cardType, contextText)
	}

	return p.QA.FillBank(ctx, model.ItemKindFlashcard, subject, target, produce, maxAttempts)
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat
func (p *Prepgen) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	return p.Chunks.ChangeIndexType(ctx, indexType, params)
}
