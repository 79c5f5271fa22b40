package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/prepgen"
	"github.com/siherrmann/prepgen/core/generation"
	"github.com/siherrmann/prepgen/helper"
	"github.com/siherrmann/prepgen/model"
)

const sampleContent = `This is a sample study document about cell biology.

Mitochondria are the powerhouses of the cell. They produce ATP through cellular
respiration, a process that oxidizes glucose in a series of enzymatic steps.

The Krebs cycle takes place in the mitochondrial matrix. It oxidizes acetyl
groups derived from carbohydrates, fats and proteins, releasing carbon dioxide
and transferring electrons to carrier molecules.

The electron transport chain in the inner mitochondrial membrane uses those
electrons to pump protons across the membrane. The resulting proton gradient
drives ATP synthase, which produces the bulk of the cell's ATP.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	ctx := context.Background()

	// GEMINI_API_KEY is read from the environment; without it the generator
	// falls back to deterministic mock content.
	genConfig := generation.NewConfigFromEnv()

	p, err := prepgen.NewPrepgen(ctx, dbConfig, genConfig, 384)
	if err != nil {
		log.Fatalf("Failed to create prepgen: %v", err)
	}
	defer p.Close()

	// Set up the default pipeline (sentence-aware chunking + embeddings)
	if err := p.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	// Create document with content
	doc := &model.Document{
		Title:   "Introduction to Cell Biology",
		Source:  "basic_example",
		Content: sampleContent,
		Metadata: model.Metadata{
			"author": "Example Author",
			"topic":  "cell biology",
		},
	}

	// Process and insert document in one call
	fmt.Println("Ingesting document...")
	numChunks, err := p.IngestDocument(doc)
	if err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}
	fmt.Printf("Document inserted with ID: %s\n", doc.RID)
	fmt.Printf("Inserted %d chunks\n", numChunks)

	// Perform a simple vector search
	queryText := "How do mitochondria produce ATP?"

	fmt.Printf("\nQuerying: %s\n", queryText)

	config := model.DefaultQueryConfig()
	config.TopK = 3

	results, err := p.Search(ctx, queryText, &config)
	if err != nil {
		log.Fatalf("Failed to search: %v", err)
	}

	fmt.Printf("\nFound %d results:\n", len(results))
	for i, result := range results {
		fmt.Printf("\n--- Result %d ---\n", i+1)
		fmt.Printf("Score: %.4f\n", result.Score)
		fmt.Printf("Source: %s\n", result.Chunk.DocumentTitle)
		fmt.Printf("Content: %s\n", result.Chunk.Content)
	}

	// Assemble a cited context and show where each part came from
	contextResult, err := p.BuildContext(ctx, queryText, &config)
	if err != nil {
		log.Fatalf("Failed to build context: %v", err)
	}
	fmt.Printf("\nAssembled context with %d citations\n", len(contextResult.Citations))
	for _, citation := range contextResult.Citations {
		fmt.Printf("[%d] %s: %s\n", citation.ID, citation.Source, citation.Excerpt)
	}

	// Generate a quiz question grounded on the retrieved context
	quiz, err := p.GenerateQuiz(ctx, "mitochondria and ATP production", &config)
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}
	fmt.Printf("\nQuiz question: %s\n", quiz.Question)
	for i, option := range quiz.Options {
		fmt.Printf("  %c) %s\n", 'A'+i, option)
	}
	fmt.Printf("Correct: %s\n", quiz.CorrectAnswer)

	// Generate a flashcard for the same subject
	card, err := p.GenerateFlashcard(ctx, "the Krebs cycle", model.CardTypeTermDefinition, &config)
	if err != nil {
		log.Fatalf("Failed to generate flashcard: %v", err)
	}
	fmt.Printf("\nFlashcard front: %s\n", card.FrontContent)
	fmt.Printf("Flashcard back: %s\n", card.BackContent)

	// Ask the tutor a free-form question
	answer, err := p.Tutor(ctx, "cell biology", "Why does the proton gradient matter?", &config)
	if err != nil {
		log.Fatalf("Failed to get tutor response: %v", err)
	}
	fmt.Printf("\nTutor: %s\n", answer)

	fmt.Println("\nBasic example completed successfully!")
}
