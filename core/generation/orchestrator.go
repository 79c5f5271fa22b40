package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/siherrmann/prepgen/model"
)

// Orchestrator coordinates prompt building, model invocation, response
// parsing and fallback. When no generator is configured it serves
// deterministic mock content; when a configured generator fails at
// invocation time it degrades to the same mock content instead of failing
// the caller. Parse failures on a successful invocation are returned as
// ErrParseFailure so batch callers can count them.
type Orchestrator struct {
	generator Generator
	mock      *MockProducer
	config    *Config
	log       *slog.Logger
}

// NewOrchestrator creates an orchestrator from the given configuration.
// With an empty APIKey the orchestrator runs in mock-only mode.
func NewOrchestrator(ctx context.Context, config *Config, logger *slog.Logger) (*Orchestrator, error) {
	config = config.normalized()

	orchestrator := &Orchestrator{
		mock:   NewMockProducer(),
		config: config,
		log:    logger,
	}

	if config.APIKey == "" {
		logger.Warn("no api key configured, generation runs in mock mode")
		return orchestrator, nil
	}

	generator, err := NewGeminiGenerator(ctx, config.APIKey, config.Model)
	if err != nil {
		return nil, err
	}
	orchestrator.generator = generator

	return orchestrator, nil
}

// NewOrchestratorWithGenerator creates an orchestrator around an existing
// generator, mainly for tests and custom backends. A nil generator means
// mock-only mode.
func NewOrchestratorWithGenerator(generator Generator, config *Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		mock:      NewMockProducer(),
		config:    config.normalized(),
		log:       logger,
	}
}

// Available reports whether a real generation backend is configured
func (o *Orchestrator) Available() bool {
	return o.generator != nil
}

// generate runs the generator and reports whether its output is usable.
// An invocation failure is logged and reported as not usable so callers
// fall back to mock content.
func (o *Orchestrator) generate(ctx context.Context, prompt string) (string, bool) {
	if o.generator == nil {
		return "", false
	}

	response, err := o.generator.Generate(ctx, prompt, o.config.Temperature, o.config.MaxTokens)
	if err != nil {
		o.log.Warn("generation failed, falling back to mock content", slog.Any("error", err))
		return "", false
	}

	return response, true
}

// QuizQuestion generates a multiple-choice question about the given topic,
// grounded in the given context
func (o *Orchestrator) QuizQuestion(ctx context.Context, topic string, contextText string) (*model.Item, error) {
	prompt := buildQuizPrompt(topic, contextText, o.config.MaxContextChars)

	response, ok := o.generate(ctx, prompt)
	if !ok {
		return o.mock.QuizQuestion(topic), nil
	}

	item := &model.Item{}
	err := extractJSON(response, []string{"question", "options", "correct_answer"}, item)
	if err != nil {
		return nil, err
	}
	item.Kind = model.ItemKindQuiz
	item.Subject = topic

	err = validateQuiz(item)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// validateQuiz rejects structurally broken quiz items before they reach
// consumers: exactly 4 options, the correct answer among them, and
// non-empty question and explanation.
func validateQuiz(item *model.Item) error {
	if strings.TrimSpace(item.Question) == "" {
		return fmt.Errorf("%w: empty question", ErrParseFailure)
	}
	if len(item.Options) != 4 {
		return fmt.Errorf("%w: expected 4 options, got %d", ErrParseFailure, len(item.Options))
	}
	if strings.TrimSpace(item.Explanation) == "" {
		return fmt.Errorf("%w: empty explanation", ErrParseFailure)
	}

	for _, option := range item.Options {
		if option == item.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("%w: correct answer not among options", ErrParseFailure)
}

// Flashcard generates a single flashcard of the given card type
func (o *Orchestrator) Flashcard(ctx context.Context, subject string, cardType string, contextText string) (*model.Item, error) {
	if _, ok := flashcardPrompts[cardType]; !ok {
		cardType = model.CardTypeTermDefinition
	}
	prompt := buildFlashcardPrompt(subject, cardType, contextText, o.config.MaxContextChars)

	response, ok := o.generate(ctx, prompt)
	if !ok {
		return o.mock.Flashcard(subject, cardType), nil
	}

	frontLabel, backLabel := flashcardLabels(cardType)
	fields := parseLabeledLines(response, []string{frontLabel, backLabel, "SOURCE"})

	front := fields[strings.ToLower(frontLabel)]
	back := fields[strings.ToLower(backLabel)]
	if front == "" || back == "" {
		return nil, fmt.Errorf("%w: missing %v or %v line", ErrParseFailure, frontLabel, backLabel)
	}

	source := fields["source"]
	if source == "" {
		source = subject
	}

	return &model.Item{
		Kind:         model.ItemKindFlashcard,
		Subject:      subject,
		CardType:     cardType,
		FrontContent: front,
		BackContent:  back,
		Source:       source,
	}, nil
}

// Tutor generates a free-form tutoring response for the given subject and
// candidate input
func (o *Orchestrator) Tutor(ctx context.Context, subject string, userInput string, contextText string) (string, error) {
	prompt := buildTutorPrompt(subject, userInput, contextText, o.config.MaxContextChars)

	response, ok := o.generate(ctx, prompt)
	if !ok {
		return o.mock.TutorResponse(subject, userInput), nil
	}

	return response, nil
}

// Review grades a candidate's free-text answer against the given context
func (o *Orchestrator) Review(ctx context.Context, question string, userAnswer string, contextText string) (*model.Item, error) {
	prompt := buildReviewPrompt(question, userAnswer, contextText, o.config.MaxContextChars)

	response, ok := o.generate(ctx, prompt)
	if !ok {
		return o.mock.Review(question, userAnswer), nil
	}

	item := &model.Item{}
	err := extractJSON(response, []string{"grade", "feedback"}, item)
	if err != nil {
		return nil, err
	}
	item.Kind = model.ItemKindReview

	switch item.Grade {
	case model.GradeCorrect, model.GradePartial, model.GradeIncorrect:
	default:
		item.Grade = model.GradePartial
	}

	return item, nil
}
