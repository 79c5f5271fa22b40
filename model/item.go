package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind identifies the content kind of a generated item
type ItemKind string

const (
	ItemKindQuiz      ItemKind = "quiz"
	ItemKindFlashcard ItemKind = "flashcard"
	ItemKindReview    ItemKind = "review"
)

// Flashcard card types
const (
	CardTypeTermDefinition = "term_definition"
	CardTypeScenarioAction = "scenario_action"
	CardTypeFillBlank      = "fill_blank"
)

// Review grades
const (
	GradeCorrect   = "correct"
	GradePartial   = "partial"
	GradeIncorrect = "incorrect"
)

// Item is a generated content item, polymorphic over ItemKind.
// Only the field group matching the kind is populated; the JSON field names
// are the wire format consumers depend on and must not change.
type Item struct {
	ID      int64     `json:"id,omitempty"`
	RID     uuid.UUID `json:"rid,omitempty"`
	Kind    ItemKind  `json:"kind"`
	Subject string    `json:"subject,omitempty"`

	// Quiz fields
	Question      string   `json:"question,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`

	// Flashcard fields
	CardType     string `json:"card_type,omitempty"`
	FrontContent string `json:"front_content,omitempty"`
	BackContent  string `json:"back_content,omitempty"`
	Hint         string `json:"hint,omitempty"`
	Source       string `json:"source,omitempty"`

	// Review fields
	Grade          string `json:"grade,omitempty"`
	Feedback       string `json:"feedback,omitempty"`
	TextbookAnswer string `json:"textbook_answer,omitempty"`

	Approved  bool      `json:"approved,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Front returns the prompt side of the item, used for duplicate comparison
func (i *Item) Front() string {
	switch i.Kind {
	case ItemKindQuiz:
		return i.Question
	case ItemKindFlashcard:
		return i.FrontContent
	case ItemKindReview:
		return i.Feedback
	}
	return ""
}

// Back returns the answer side of the item, used for content-length checks
func (i *Item) Back() string {
	switch i.Kind {
	case ItemKindQuiz:
		return i.Explanation
	case ItemKindFlashcard:
		return i.BackContent
	case ItemKindReview:
		return i.Feedback
	}
	return ""
}
