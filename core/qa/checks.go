package qa

import (
	"fmt"
	"strings"

	"github.com/siherrmann/prepgen/model"
)

// Minimum number of words expected on the answer side of an item
const DefaultMinAnswerWords = 5

// Per-kind similarity thresholds above which a candidate counts as a
// duplicate of an existing item. Review feedback is naturally repetitive,
// so it gets a tighter threshold.
var duplicateThresholds = map[model.ItemKind]float64{
	model.ItemKindQuiz:      0.85,
	model.ItemKindFlashcard: 0.85,
	model.ItemKindReview:    0.90,
}

// DuplicateThreshold returns the similarity threshold for the given kind
func DuplicateThreshold(kind model.ItemKind) float64 {
	if threshold, ok := duplicateThresholds[kind]; ok {
		return threshold
	}
	return 0.85
}

// CheckRequiredFields reports the structural fields missing for the item's kind
func CheckRequiredFields(item *model.Item) []string {
	issues := []string{}

	switch item.Kind {
	case model.ItemKindQuiz:
		if strings.TrimSpace(item.Question) == "" {
			issues = append(issues, "Structure: missing question")
		}
		if len(item.Options) != 4 {
			issues = append(issues, fmt.Sprintf("Structure: expected 4 options, got %d", len(item.Options)))
		}
		if strings.TrimSpace(item.CorrectAnswer) == "" {
			issues = append(issues, "Structure: missing correct_answer")
		}
		if strings.TrimSpace(item.Explanation) == "" {
			issues = append(issues, "Structure: missing explanation")
		}
	case model.ItemKindFlashcard:
		if strings.TrimSpace(item.FrontContent) == "" {
			issues = append(issues, "Structure: missing front_content")
		}
		if strings.TrimSpace(item.BackContent) == "" {
			issues = append(issues, "Structure: missing back_content")
		}
	case model.ItemKindReview:
		if strings.TrimSpace(item.Grade) == "" {
			issues = append(issues, "Structure: missing grade")
		}
		if strings.TrimSpace(item.Feedback) == "" {
			issues = append(issues, "Structure: missing feedback")
		}
	default:
		issues = append(issues, fmt.Sprintf("Structure: unknown item kind %q", item.Kind))
	}

	return issues
}

// CheckContentLength rejects items whose answer side is too thin to teach
// anything. minWords <= 0 falls back to DefaultMinAnswerWords.
func CheckContentLength(item *model.Item, minWords int) []string {
	if minWords <= 0 {
		minWords = DefaultMinAnswerWords
	}

	words := len(strings.Fields(item.Back()))
	if words < minWords {
		return []string{fmt.Sprintf("Content: answer side has %d words, expected at least %d", words, minWords)}
	}
	return nil
}

// CheckCorrectness verifies quiz items carry their correct answer verbatim
// among the options. Other kinds always pass.
func CheckCorrectness(item *model.Item) []string {
	if item.Kind != model.ItemKindQuiz {
		return nil
	}

	for _, option := range item.Options {
		if option == item.CorrectAnswer {
			return nil
		}
	}
	return []string{"Correctness: answer not in options"}
}

// CheckDuplicate compares the candidate's front text against the fronts of
// existing items using the fuzzy ratio and the kind's threshold.
// Comparison is case-insensitive on trimmed text.
func CheckDuplicate(item *model.Item, existing []*model.Item) []string {
	candidate := normalizeFront(item.Front())
	if candidate == "" {
		return nil
	}

	threshold := DuplicateThreshold(item.Kind)
	for _, other := range existing {
		score := Ratio(candidate, normalizeFront(other.Front()))
		if score >= threshold {
			return []string{fmt.Sprintf("Duplicate: %.0f%% similar to existing item", score*100)}
		}
	}
	return nil
}

func normalizeFront(front string) string {
	return strings.ToLower(strings.TrimSpace(front))
}

// Evaluate runs every check against the candidate and collects all issues,
// not just the first, so failure reports show the full picture.
func Evaluate(item *model.Item, existing []*model.Item, minWords int) []string {
	issues := CheckRequiredFields(item)
	issues = append(issues, CheckContentLength(item, minWords)...)
	issues = append(issues, CheckCorrectness(item)...)
	issues = append(issues, CheckDuplicate(item, existing)...)
	return issues
}
