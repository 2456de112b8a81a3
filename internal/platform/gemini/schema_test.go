package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/studyhub-api/internal/generation"
)

func TestToGenAISchema(t *testing.T) {
	t.Parallel()

	node := generation.Object(map[string]*generation.Schema{
		"word":       generation.String("the headword"),
		"score":      generation.Number(""),
		"difficulty": generation.StringEnum("easy", "medium", "hard"),
		"examples":   generation.Array(generation.String("")),
	}, "word", "score")
	node.Properties["correction"] = &generation.Schema{
		Type:     generation.TypeObject,
		Nullable: true,
		Properties: map[string]*generation.Schema{
			"fixed": generation.String(""),
		},
	}

	got := toGenAISchema(node)
	require.NotNil(t, got)

	assert.Equal(t, genai.TypeObject, got.Type)
	assert.ElementsMatch(t, []string{"word", "score"}, got.Required)

	assert.Equal(t, genai.TypeString, got.Properties["word"].Type)
	assert.Equal(t, "the headword", got.Properties["word"].Description)
	assert.Equal(t, genai.TypeNumber, got.Properties["score"].Type)
	assert.Equal(t, []string{"easy", "medium", "hard"}, got.Properties["difficulty"].Enum)

	examples := got.Properties["examples"]
	assert.Equal(t, genai.TypeArray, examples.Type)
	require.NotNil(t, examples.Items)
	assert.Equal(t, genai.TypeString, examples.Items.Type)

	correction := got.Properties["correction"]
	require.NotNil(t, correction.Nullable)
	assert.True(t, *correction.Nullable)
	assert.Nil(t, got.Nullable, "non-nullable nodes leave Nullable unset")
}

func TestToGenAISchemaNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, toGenAISchema(nil))
}

func TestToGenAIParts(t *testing.T) {
	t.Parallel()

	parts := toGenAIParts([]generation.Part{
		generation.TextPart("listen to this"),
		generation.BlobPart("audio/wav", []byte{0x52, 0x49, 0x46, 0x46}),
	})

	require.Len(t, parts, 2)
	assert.Equal(t, "listen to this", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "audio/wav", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte{0x52, 0x49, 0x46, 0x46}, parts[1].InlineData.Data)
}
