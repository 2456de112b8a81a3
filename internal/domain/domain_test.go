package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studyhub-api/internal/domain"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	id := domain.NewID("fc")
	assert.True(t, strings.HasPrefix(id, "fc-"))
	assert.NotEqual(t, id, domain.NewID("fc"))
}

func TestLevelForXP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		xp   int
		want int
	}{
		{xp: -10, want: 1},
		{xp: 0, want: 1},
		{xp: 99, want: 1},
		{xp: 100, want: 2},
		{xp: 120, want: 2},
		{xp: 250, want: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestQuizQuestionValidate(t *testing.T) {
	t.Parallel()

	valid := domain.QuizQuestion{
		ID:            "q-1",
		Question:      "What does 'forest' mean?",
		Options:       []string{"rừng", "biển", "núi", "sông"},
		CorrectAnswer: "rừng",
		Explanation:   "'Forest' nghĩa là rừng.",
		Type:          domain.QuestionTypeMeaning,
		Difficulty:    domain.DifficultyEasy,
	}
	assert.NoError(t, valid.Validate())

	missingOptions := valid
	missingOptions.Options = []string{"rừng", "biển"}
	assert.ErrorIs(t, missingOptions.Validate(), domain.ErrQuestionIncomplete)

	missingAnswer := valid
	missingAnswer.CorrectAnswer = ""
	assert.ErrorIs(t, missingAnswer.Validate(), domain.ErrQuestionIncomplete)
}

func TestFlashcardValidate(t *testing.T) {
	t.Parallel()

	card := domain.Flashcard{Word: "forest", Meaning: "rừng"}
	assert.NoError(t, card.Validate())

	card.Meaning = ""
	assert.ErrorIs(t, card.Validate(), domain.ErrFlashcardMeaningEmpty)

	card = domain.Flashcard{Meaning: "rừng"}
	assert.ErrorIs(t, card.Validate(), domain.ErrFlashcardWordEmpty)
}

func TestMindMapClampDepth(t *testing.T) {
	t.Parallel()

	leaf := func(id string) *domain.MindMapNode {
		return &domain.MindMapNode{ID: id, Label: id, Color: "#fff"}
	}

	// Four levels deep; one past the contract limit.
	root := leaf("root")
	child := leaf("child")
	grand := leaf("grand")
	great := leaf("great")
	grand.Children = []*domain.MindMapNode{great}
	child.Children = []*domain.MindMapNode{grand}
	root.Children = []*domain.MindMapNode{child}

	root.ClampDepth(domain.MaxMindMapDepth)

	require.Len(t, root.Children, 1)
	require.Len(t, root.Children[0].Children, 1)
	assert.Empty(t, root.Children[0].Children[0].Children, "fourth level must be dropped")
}

func TestValidCardStyle(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.ValidCardStyle(domain.CardStyleHandDrawn))
	assert.True(t, domain.ValidCardStyle(domain.CardStyleMinimal))
	assert.False(t, domain.ValidCardStyle(domain.CardStyle("oil_painting")))
}
