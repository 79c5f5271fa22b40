package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/siherrmann/prepgen/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuizItem(subject string, question string) *model.Item {
	return &model.Item{
		Kind:          model.ItemKindQuiz,
		Subject:       subject,
		Question:      question,
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: "B",
		Explanation:   "Option B is correct according to the source material.",
	}
}

func TestItemsNewItemsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewItemsDBHandler", func(t *testing.T) {
		itemsDbHandler, err := NewItemsDBHandler(database, true)
		assert.NoError(t, err, "Expected NewItemsDBHandler to not return an error")
		require.NotNil(t, itemsDbHandler, "Expected NewItemsDBHandler to return a non-nil instance")
		require.NotNil(t, itemsDbHandler.db, "Expected NewItemsDBHandler to have a non-nil database instance")
	})

	t.Run("Invalid call NewItemsDBHandler with nil database", func(t *testing.T) {
		_, err := NewItemsDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating ItemsDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestItemsInsert(t *testing.T) {
	database := initDB(t)

	itemsDbHandler, err := NewItemsDBHandler(database, true)
	require.NoError(t, err)

	t.Run("Insert quiz item", func(t *testing.T) {
		item := testQuizItem("hydraulics", "What is the rated flow?")

		err := itemsDbHandler.InsertItem(item)
		assert.NoError(t, err, "Expected InsertItem to not return an error")
		assert.NotZero(t, item.ID, "Expected inserted item to have an ID")
		assert.NotEqual(t, uuid.Nil, item.RID, "Expected inserted item to have a RID")
		assert.Equal(t, model.ItemKindQuiz, item.Kind, "Expected kind to round-trip")
		assert.Equal(t, []string{"A", "B", "C", "D"}, item.Options, "Expected options to round-trip")
		assert.False(t, item.Approved, "Expected new item to be unapproved")

		// Cleanup
		itemsDbHandler.DeleteItem(item.RID)
	})

	t.Run("Insert flashcard item", func(t *testing.T) {
		item := &model.Item{
			Kind:         model.ItemKindFlashcard,
			Subject:      "hydraulics",
			CardType:     model.CardTypeTermDefinition,
			FrontContent: "Friction loss",
			BackContent:  "Pressure lost to friction in the hose.",
			Hint:         "Think about what happens inside the hose.",
			Source:       "Hydraulics manual",
		}

		err := itemsDbHandler.InsertItem(item)
		assert.NoError(t, err, "Expected InsertItem to not return an error")
		assert.Equal(t, "Friction loss", item.FrontContent, "Expected front content to round-trip")
		assert.Equal(t, model.CardTypeTermDefinition, item.CardType, "Expected card type to round-trip")

		// Cleanup
		itemsDbHandler.DeleteItem(item.RID)
	})
}

func TestItemsSelect(t *testing.T) {
	database := initDB(t)

	itemsDbHandler, err := NewItemsDBHandler(database, true)
	require.NoError(t, err)

	item := testQuizItem("hydraulics", "Selectable question?")
	err = itemsDbHandler.InsertItem(item)
	require.NoError(t, err)

	t.Run("Select existing item", func(t *testing.T) {
		retrieved, err := itemsDbHandler.SelectItem(item.RID)
		assert.NoError(t, err, "Expected SelectItem to not return an error")
		assert.Equal(t, item.RID, retrieved.RID, "Expected RIDs to match")
		assert.Equal(t, item.Question, retrieved.Question, "Expected question to match")
		assert.Equal(t, item.Options, retrieved.Options, "Expected options to match")
	})

	t.Run("Select nonexistent item returns error", func(t *testing.T) {
		_, err := itemsDbHandler.SelectItem(uuid.New())
		assert.Error(t, err, "Expected error for nonexistent item")
	})

	// Cleanup
	itemsDbHandler.DeleteItem(item.RID)
}

func TestItemsSelectByKindAndSubject(t *testing.T) {
	database := initDB(t)

	itemsDbHandler, err := NewItemsDBHandler(database, true)
	require.NoError(t, err)

	subject := "select-by-kind-subject"
	inserted := []*model.Item{}
	for _, question := range []string{"First question?", "Second question?", "Third question?"} {
		item := testQuizItem(subject, question)
		err = itemsDbHandler.InsertItem(item)
		require.NoError(t, err)
		inserted = append(inserted, item)
	}
	other := &model.Item{
		Kind:         model.ItemKindFlashcard,
		Subject:      subject,
		FrontContent: "A card",
		BackContent:  "Not a quiz item.",
	}
	err = itemsDbHandler.InsertItem(other)
	require.NoError(t, err)

	t.Run("Returns only matching kind and subject", func(t *testing.T) {
		items, err := itemsDbHandler.SelectItemsByKindAndSubject(model.ItemKindQuiz, subject, 0)
		assert.NoError(t, err, "Expected SelectItemsByKindAndSubject to not return an error")
		assert.Len(t, items, 3, "Expected only the quiz items of the subject")
		for _, item := range items {
			assert.Equal(t, model.ItemKindQuiz, item.Kind)
			assert.Equal(t, subject, item.Subject)
		}
	})

	t.Run("Limit caps the result count", func(t *testing.T) {
		items, err := itemsDbHandler.SelectItemsByKindAndSubject(model.ItemKindQuiz, subject, 2)
		assert.NoError(t, err)
		assert.Len(t, items, 2, "Expected at most the limit")
	})

	t.Run("Count matches inserted items", func(t *testing.T) {
		count, err := itemsDbHandler.CountItems(model.ItemKindQuiz, subject)
		assert.NoError(t, err)
		assert.Equal(t, 3, count, "Expected count to match inserted quiz items")
	})

	// Cleanup
	for _, item := range inserted {
		itemsDbHandler.DeleteItem(item.RID)
	}
	itemsDbHandler.DeleteItem(other.RID)
}

func TestItemsApprove(t *testing.T) {
	database := initDB(t)

	itemsDbHandler, err := NewItemsDBHandler(database, true)
	require.NoError(t, err)

	item := testQuizItem("hydraulics", "Approvable question?")
	err = itemsDbHandler.InsertItem(item)
	require.NoError(t, err)
	require.False(t, item.Approved)

	err = itemsDbHandler.ApproveItem(item.RID)
	assert.NoError(t, err, "Expected ApproveItem to not return an error")

	retrieved, err := itemsDbHandler.SelectItem(item.RID)
	require.NoError(t, err)
	assert.True(t, retrieved.Approved, "Expected item to be approved")

	// Cleanup
	itemsDbHandler.DeleteItem(item.RID)
}

func TestItemsDelete(t *testing.T) {
	database := initDB(t)

	itemsDbHandler, err := NewItemsDBHandler(database, true)
	require.NoError(t, err)

	item := testQuizItem("hydraulics", "Deletable question?")
	err = itemsDbHandler.InsertItem(item)
	require.NoError(t, err)

	err = itemsDbHandler.DeleteItem(item.RID)
	assert.NoError(t, err, "Expected DeleteItem to not return an error")

	_, err = itemsDbHandler.SelectItem(item.RID)
	assert.Error(t, err, "Expected error when selecting deleted item")
}

func TestItemsBank(t *testing.T) {
	database := initDB(t)

	itemsDbHandler, err := NewItemsDBHandler(database, true)
	require.NoError(t, err)

	subject := "bank-subject"

	t.Run("Add and list through the bank interface", func(t *testing.T) {
		item := testQuizItem(subject, "Bank question?")

		err := itemsDbHandler.Add(context.Background(), item)
		assert.NoError(t, err, "Expected Add to not return an error")

		existing, err := itemsDbHandler.ListExisting(context.Background(), model.ItemKindQuiz, subject)
		assert.NoError(t, err, "Expected ListExisting to not return an error")
		require.Len(t, existing, 1, "Expected the added item to be listed")
		assert.Equal(t, "Bank question?", existing[0].Question)

		// Cleanup
		itemsDbHandler.DeleteItem(item.RID)
	})
}
