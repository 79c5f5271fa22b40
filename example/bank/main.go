package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/prepgen"
	"github.com/siherrmann/prepgen/core/generation"
	"github.com/siherrmann/prepgen/helper"
	"github.com/siherrmann/prepgen/model"
	"github.com/siherrmann/prepgen/session"
)

const studyMaterial = `Photosynthesis study notes.

Photosynthesis converts light energy into chemical energy. It takes place in
the chloroplasts of plant cells and consists of light-dependent reactions and
the Calvin cycle.

The light-dependent reactions occur in the thylakoid membranes. They split
water molecules, release oxygen and produce ATP and NADPH.

The Calvin cycle occurs in the stroma. It fixes carbon dioxide into organic
molecules using the ATP and NADPH produced by the light-dependent reactions.

Chlorophyll is the primary pigment. It absorbs red and blue light and reflects
green light, which is why most plants appear green.`

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

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

	// Without GEMINI_API_KEY the generator produces deterministic mock
	// content, which is enough to demonstrate the quality pipeline.
	genConfig := generation.NewConfigFromEnv()

	p, err := prepgen.NewPrepgen(ctx, dbConfig, genConfig, 384)
	if err != nil {
		log.Fatalf("Failed to create prepgen: %v", err)
	}
	defer p.Close()

	if err := p.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	// Ingest the study material the bank will be grounded on
	doc := &model.Document{
		Title:   "Photosynthesis Study Notes",
		Source:  "bank_example",
		Content: studyMaterial,
	}
	numChunks, err := p.IngestDocument(doc)
	if err != nil {
		log.Fatalf("Failed to ingest document: %v", err)
	}
	fmt.Printf("Ingested %d chunks from %q\n", numChunks, doc.Title)

	// Generate up to 3 candidates concurrently
	p.QA.BatchSize = 3

	// Fill the quiz bank: each candidate passes structure, content length,
	// correctness and fuzzy-duplicate checks before it is persisted.
	subject := "photosynthesis"
	fmt.Printf("\nFilling quiz bank for %q...\n", subject)
	items, stats, err := p.FillQuizBank(ctx, subject, 5, 20)
	if err != nil {
		log.Fatalf("Failed to fill quiz bank: %v", err)
	}

	printStats("quiz", stats)
	for i, item := range items {
		fmt.Printf("\n%d. %s\n", i+1, item.Question)
		fmt.Printf("   Correct: %s\n", item.CorrectAnswer)
	}

	// Fill the flashcard bank with term/definition cards
	fmt.Printf("\nFilling flashcard bank for %q...\n", subject)
	cards, cardStats, err := p.FillFlashcardBank(ctx, subject, model.CardTypeTermDefinition, 3, 12)
	if err != nil {
		log.Fatalf("Failed to fill flashcard bank: %v", err)
	}

	printStats("flashcard", cardStats)
	for i, card := range cards {
		fmt.Printf("\n%d. Front: %s\n", i+1, card.FrontContent)
		fmt.Printf("   Back: %s\n", card.BackContent)
	}

	// Serve the bank to a user, skipping patterns they have already seen
	userID := "student-42"
	served := 0
	for _, item := range items {
		if p.Sessions.CheckAndMark(userID, item.Subject, string(item.Kind), item.Question) {
			served++
		}
	}
	fmt.Printf("\nServed %d unseen questions to %s\n", served, userID)
	fmt.Printf("Session signature example: %s\n", session.Signature(subject, "quiz", "calvin cycle"))

	sessionStats := p.Sessions.Stats(userID)
	fmt.Printf("Session stats: %d seen, %d unique patterns\n", sessionStats.QuestionsSeen, sessionStats.UniquePatterns)

	fmt.Println("\nBank example completed successfully!")
}

func printStats(kind string, stats *model.GenerationStats) {
	fmt.Printf("Attempted %d %s candidates, %d passed, %d failed\n", stats.Attempted, kind, stats.Passed, stats.Failed)
	for _, failure := range stats.Failures {
		fmt.Printf("  rejected: %v\n", failure.Issues)
	}
}
