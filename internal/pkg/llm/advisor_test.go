package llm

import (
	"Lumina/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	content  string
	err      error
	messages []llms.MessageContent
}

func (f *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.content}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func newAdvisor(m llms.Model) *BookAdvisor {
	return NewBookAdvisor(m, "test-model", Prompts{
		SuggestTitles:      defaultSuggestPrompt,
		AnalyzeBook:        defaultAnalyzePrompt,
		EnhanceDescription: defaultEnhancePrompt,
	})
}

func TestParseSuggestions(t *testing.T) {
	t.Run("fenced json", func(t *testing.T) {
		content := "```json\n{\"recommendations\":[{\"title\":\" Duna \",\"author\":\"Frank Herbert\"},{\"title\":\"\",\"author\":\"X\"}]}\n```"

		got, err := ParseSuggestions(content)
		require.NoError(t, err)
		assert.Equal(t, []model.TitleSuggestion{{Title: "Duna", Author: "Frank Herbert"}}, got)
	})

	t.Run("json surrounded by prose", func(t *testing.T) {
		got, err := ParseSuggestions(`Claro! {"recommendations":[{"title":"Sapiens","author":"Yuval Noah Harari"}]} Boa leitura.`)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Sapiens", got[0].Title)
	})

	t.Run("no json", func(t *testing.T) {
		_, err := ParseSuggestions("não sei")
		assert.ErrorIs(t, err, ErrInvalidSuggestion)
	})

	t.Run("missing recommendations key", func(t *testing.T) {
		got, err := ParseSuggestions(`{"books":[]}`)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestParseAnalysis(t *testing.T) {
	got, err := ParseAnalysis(`{
		"vibeTags": ["Cozy", "spooky", "atmospheric", "cozy"],
		"mood": ["hopeful", "bored"],
		"atmosphere": ["rainy-day", "desert"],
		"pace": "turbo",
		"intensity": 9,
		"reasoning": " curto "
	}`)
	require.NoError(t, err)

	assert.Equal(t, model.StringList{"cozy", "atmospheric"}, got.VibeTags)
	assert.Equal(t, model.StringList{"hopeful"}, got.Mood)
	assert.Equal(t, model.StringList{"rainy-day"}, got.Atmosphere)
	assert.Equal(t, model.PaceMedium, got.Pace)
	assert.Equal(t, 5, got.Intensity)
	assert.Equal(t, "curto", got.Reasoning)

	low, err := ParseAnalysis(`{"pace":"slow","intensity":0}`)
	require.NoError(t, err)
	assert.Equal(t, model.PaceSlow, low.Pace)
	assert.Equal(t, 1, low.Intensity)
	assert.Empty(t, low.VibeTags)
}

func TestBookAdvisor(t *testing.T) {
	ctx := context.Background()

	t.Run("suggest titles sends the profile", func(t *testing.T) {
		m := &fakeModel{content: `{"recommendations":[{"title":"Duna","author":"Frank Herbert"}]}`}
		profile := &model.ReadingProfile{
			FavoriteGenres:  model.StringList{"Ficção Científica"},
			MoodTags:        model.StringList{"hopeful"},
			VibePreferences: model.VibePreferences{"atmospheric": 8},
		}

		got, err := newAdvisor(m).SuggestTitles(ctx, profile)
		require.NoError(t, err)
		require.Len(t, got, 1)

		require.Len(t, m.messages, 2)
		human, ok := m.messages[1].Parts[0].(llms.TextContent)
		require.True(t, ok)
		assert.Contains(t, human.Text, "Ficção Científica")
		assert.Contains(t, human.Text, "não especificado")
	})

	t.Run("suggest titles propagates model errors", func(t *testing.T) {
		_, err := newAdvisor(&fakeModel{err: errors.New("quota")}).SuggestTitles(ctx, &model.ReadingProfile{})
		assert.Error(t, err)
	})

	t.Run("empty model output", func(t *testing.T) {
		_, err := newAdvisor(&fakeModel{content: "  "}).AnalyzeBook(ctx, &BookAnalysisInput{Title: "t"})
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("enhance falls back to the original", func(t *testing.T) {
		got := newAdvisor(&fakeModel{err: errors.New("down")}).EnhanceDescription(ctx, "t", "a", "original")
		assert.Equal(t, "original", got)

		got = newAdvisor(&fakeModel{content: "melhorada"}).EnhanceDescription(ctx, "t", "a", "original")
		assert.Equal(t, "melhorada", got)
	})
}
