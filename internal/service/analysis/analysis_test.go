package analysis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuckyTW/ppt-creator/internal/model"
	"github.com/LuckyTW/ppt-creator/internal/service/llm"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
)

func reply(text string) llm.Generator {
	return llm.GeneratorFunc(func(context.Context, string, llm.Options) (string, error) {
		return text, nil
	})
}

func headingContent() *model.ExtractedContent {
	return &model.ExtractedContent{
		RawText:   "Intro\n\nBody text here with enough words to pass.",
		WordCount: 12,
		Headings: []model.Heading{
			{Level: 1, Text: "Intro"},
			{Level: 2, Text: "Details"},
		},
		Lists: []model.List{
			{Type: model.ListBullet, Items: []string{"a", "b", "c", "d", "e", "f"}},
			{Type: model.ListBullet, Items: []string{"x"}},
			{Type: model.ListNumbered, Items: []string{"y"}},
		},
	}
}

func TestFallbackFromHeadings(t *testing.T) {
	svc := New(nil, llm.Options{}, nil)

	out, err := svc.Analyze(context.Background(), Input{Content: headingContent(), FileName: "plan.v2.md", Language: model.LangEnglish})
	require.NoError(t, err)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, "plan.v2", out.Metadata.Title)
	assert.Equal(t, "Intro", out.Metadata.MainTopic)
	assert.Equal(t, model.ImportanceHigh, out.Sections[0].Importance)
	assert.Equal(t, model.ImportanceMedium, out.Sections[1].Importance)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, out.Sections[0].BulletPoints)
	// lists past the last section are merged into it
	assert.Equal(t, []string{"x", "y"}, out.Sections[1].BulletPoints)
	assert.Equal(t, 5, out.RecommendedSlideCount)
	assert.Empty(t, out.Keywords)
}

func TestFallbackFromParagraphs(t *testing.T) {
	var paras []string
	for i := 1; i <= 7; i++ {
		paras = append(paras, fmt.Sprintf("Paragraph %d %s", i, strings.Repeat("word ", 30)))
	}
	content := &model.ExtractedContent{RawText: strings.Join(paras, "\n\n"), WordCount: 200}

	out := Fallback(Input{Content: content, FileName: "essay.txt", Language: model.LangKorean})

	require.Len(t, out.Sections, 3)
	assert.Equal(t, "섹션 1", out.Sections[0].Title)
	assert.Equal(t, model.ImportanceHigh, out.Sections[0].Importance)
	// ceil(7/3) = 3 paragraphs per chunk, the last chunk gets the remainder
	assert.Len(t, out.Sections[0].BulletPoints, 3)
	assert.Len(t, out.Sections[2].BulletPoints, 1)
	for _, b := range out.Sections[0].BulletPoints {
		assert.LessOrEqual(t, len([]rune(b)), 100)
	}
	assert.LessOrEqual(t, len([]rune(out.Sections[0].Content)), 500)
	assert.Len(t, []rune(out.Summary), 200)
	assert.Equal(t, 6, out.RecommendedSlideCount)
}

func TestAnalyzeUsesAIReply(t *testing.T) {
	gen := reply("```json\n" + `{
		"metadata": {"title": "", "mainTopic": "Growth"},
		"sections": [
			{"title": "Market", "bulletPoints": ["1","2","3","4","5","6"], "importance": "critical"},
			{"id": "custom", "importance": "low", "suggestedSlideType": "chart"}
		],
		"keywords": ["growth"],
		"summary": "short"
	}` + "\n```")

	out, err := New(gen, llm.Options{}, nil).Analyze(context.Background(), Input{Content: headingContent(), FileName: "q3.md", Language: model.LangEnglish})
	require.NoError(t, err)

	require.Len(t, out.Sections, 2)
	assert.Equal(t, "q3", out.Metadata.Title)
	assert.Equal(t, "section_1", out.Sections[0].ID)
	assert.Len(t, out.Sections[0].BulletPoints, 5)
	assert.Equal(t, model.ImportanceMedium, out.Sections[0].Importance)
	assert.Equal(t, "bullet_points", out.Sections[0].SuggestedSlideType)
	assert.Equal(t, "custom", out.Sections[1].ID)
	assert.Equal(t, "Section 2", out.Sections[1].Title)
	assert.Equal(t, "chart", out.Sections[1].SuggestedSlideType)
	assert.Equal(t, 5, out.RecommendedSlideCount)
	assert.Equal(t, []string{"growth"}, out.Keywords)
}

func TestAnalyzeFallsBackOnProse(t *testing.T) {
	out, err := New(reply("Sorry, I can't do that."), llm.Options{}, nil).
		Analyze(context.Background(), Input{Content: headingContent(), FileName: "a.md"})
	require.NoError(t, err)
	assert.Equal(t, "Intro", out.Sections[0].Title)
}

func TestAnalyzeFallsBackOnAIError(t *testing.T) {
	gen := llm.GeneratorFunc(func(context.Context, string, llm.Options) (string, error) {
		return "", errors.New(errors.ErrCodeAIService, "boom")
	})
	out, err := New(gen, llm.Options{}, nil).Analyze(context.Background(), Input{Content: headingContent(), FileName: "a.md"})
	require.NoError(t, err)
	assert.Len(t, out.Sections, 2)
}

func TestAnalyzeFallsBackOnEmptySections(t *testing.T) {
	out, err := New(reply(`{"sections": []}`), llm.Options{}, nil).
		Analyze(context.Background(), Input{Content: headingContent(), FileName: "a.md"})
	require.NoError(t, err)
	assert.Len(t, out.Sections, 2)
}

func TestAnalyzePassesOptions(t *testing.T) {
	var got llm.Options
	gen := llm.GeneratorFunc(func(_ context.Context, prompt string, opts llm.Options) (string, error) {
		got = opts
		assert.Contains(t, prompt, "Intro")
		return `{"sections":[{"title":"x"}]}`, nil
	})
	_, err := New(gen, llm.Options{Temperature: 0.7}, nil).Analyze(context.Background(), Input{Content: headingContent(), FileName: "a.md"})
	require.NoError(t, err)
	assert.Equal(t, 4096, got.MaxOutputTokens)
	assert.Equal(t, 0.7, got.Temperature)
}

func TestAnalyzeNilContentIsHardFailure(t *testing.T) {
	_, err := New(nil, llm.Options{}, nil).Analyze(context.Background(), Input{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAnalysis, errors.Code(err))
}
