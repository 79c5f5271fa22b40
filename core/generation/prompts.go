package generation

import (
	"fmt"
	"unicode/utf8"

	"github.com/siherrmann/prepgen/model"
)

// Marker appended when the context block is cut at the configured cap.
// Truncation must stay visible to the model and to anyone reading prompts.
const trimmedMarker = "...[TRIMMED]"

const quizPreamble = `You are a veteran instructor and TEST DESIGNER creating original exam questions.
Your goal is to help candidates pass written certification exams.

QUESTION GENERATION RULES:
1. Create ORIGINAL questions: use provided context as a STYLE REFERENCE only.
   Vary the numbers, swap the equipment or scenario, use different names and situations.
   DO NOT copy questions verbatim from the reference material.
2. Questions must be answerable without a calculator: prefer round numbers.
3. Format: Return ONLY valid JSON with keys: 'question', 'options' (list of 4), 'correct_answer', 'explanation'.`

const tutorPreamble = `You are a veteran instructor acting as a TUTOR, not a quiz master.
Your goal is to help candidates truly UNDERSTAND difficult concepts.

TEACHING METHODOLOGY (follow these 4 steps EVERY time):
1. HOOK (Why it matters): start with a realistic scenario where this concept matters.
2. ANALOGY (Make it stick): use equipment and situations the candidate already knows.
3. PRACTICE (Small win): give them ONE simple problem to try.
4. VERIFY (Check for understanding): end with "Explain this back to me..." or "What would happen if...".

RULES:
1. Stay in character: a patient senior mentor coaching a motivated candidate.
2. Encourage, don't judge.
3. Keep it concise: each step 2-3 sentences max, total response under 300 words.
4. Ground in the provided manual content when possible.`

const reviewPreamble = `You are a veteran instructor with 20 years of experience grading a candidate's exam answer.

RULES:
1. ONLY use information from the provided context.
2. Be encouraging but accurate.
3. Grade as: "correct", "partial", or "incorrect".
4. Provide specific feedback on what was good and what was missing.
5. Always provide the textbook-correct answer.`

// flashcardPrompts maps card types to their generation instructions.
// Each instructs a labeled-line response format parsed by parseLabeledLines.
var flashcardPrompts = map[string]string{
	model.CardTypeTermDefinition: `Generate ONE flashcard for exam prep on %s.
Create a term/definition card about a specific concept from this subject.

Return in this exact format:
TERM: [A specific term or concept]
DEFINITION: [A clear, concise definition in 1-2 sentences]
SOURCE: %s`,

	model.CardTypeScenarioAction: `Generate ONE flashcard for exam prep on %s.
Create a SCENARIO -> ACTION card testing decision-making.

Return in this exact format:
SCENARIO: [A realistic scenario requiring judgment - 1-2 sentences]
ACTION: [The best response - 1-2 sentences]
SOURCE: %s`,

	model.CardTypeFillBlank: `Generate ONE flashcard for exam prep on %s.
Create a FILL-IN-THE-BLANK card testing specific knowledge.

Return in this exact format:
PROMPT: [A question with a blank, e.g., "Standard flow rate is ___ GPM"]
ANSWER: [The correct value]
SOURCE: %s`,
}

// trimContext bounds the context block to maxChars bytes, marking the cut.
// Content beyond the cap is never dropped silently. The cut falls on a rune
// boundary so the prompt stays valid UTF-8.
func trimContext(context string, maxChars int) string {
	if len(context) <= maxChars {
		return context
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(context[cut]) {
		cut--
	}
	return context[:cut] + trimmedMarker
}

func buildQuizPrompt(topic string, context string, maxContextChars int) string {
	contextBlock := trimContext(context, maxContextChars)
	if contextBlock == "" {
		contextBlock = "[No reference material found - use general subject knowledge]"
	}

	return fmt.Sprintf(`%s

Based on the following reference material, generate a challenging multiple-choice question about '%s'.

REFERENCE MATERIAL:
%s

CRITICAL: Return ONLY valid JSON. No markdown, no explanation, just JSON:
{"question": "...", "options": ["A", "B", "C", "D"], "correct_answer": "...", "explanation": "..."}`,
		quizPreamble, topic, contextBlock)
}

func buildFlashcardPrompt(subject string, cardType string, context string, maxContextChars int) string {
	template, ok := flashcardPrompts[cardType]
	if !ok {
		template = flashcardPrompts[model.CardTypeTermDefinition]
	}

	prompt := fmt.Sprintf(template, subject, subject)

	if context != "" {
		prompt += fmt.Sprintf("\n\nREFERENCE MATERIAL:\n%s", trimContext(context, maxContextChars))
	}

	return prompt
}

func buildTutorPrompt(subject string, userInput string, context string, maxContextChars int) string {
	contextBlock := trimContext(context, maxContextChars)
	if contextBlock == "" {
		contextBlock = "[No specific manual content found - use general subject knowledge]"
	}

	return fmt.Sprintf(`%s

The candidate needs help with: %s
They specifically said: %q

RELEVANT MANUAL CONTENT:
%s

Using the 4-step method (Hook -> Analogy -> Practice -> Verify), help them understand this concept.`,
		tutorPreamble, subject, userInput, contextBlock)
}

func buildReviewPrompt(question string, userAnswer string, context string, maxContextChars int) string {
	contextBlock := trimContext(context, maxContextChars)
	if contextBlock == "" {
		contextBlock = "[No relevant context found in uploaded documents]"
	}

	return fmt.Sprintf(`%s

CONTEXT FROM TRAINING MATERIALS:
%s

EXAM QUESTION:
%s

CANDIDATE'S ANSWER:
%s

Respond in the following JSON format exactly:
{
    "grade": "correct" | "partial" | "incorrect",
    "feedback": "Your detailed feedback here...",
    "textbook_answer": "The complete correct answer based on the training materials..."
}

Your response (JSON only):`,
		reviewPreamble, contextBlock, question, userAnswer)
}

// labeled-line labels per card type
func flashcardLabels(cardType string) (front string, back string) {
	switch cardType {
	case model.CardTypeScenarioAction:
		return "SCENARIO", "ACTION"
	case model.CardTypeFillBlank:
		return "PROMPT", "ANSWER"
	default:
		return "TERM", "DEFINITION"
	}
}
