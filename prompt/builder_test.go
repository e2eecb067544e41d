package prompt_test

import (
	"errors"
	"strings"
	"testing"

	"press-lens/models"
	"press-lens/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	testCases := []struct {
		name      string
		in        prompt.Input
		wantErr   bool
		wantCount int
		contains  []string
	}{
		{
			name:      "two paragraphs",
			in:        prompt.Input{Title: "新サービス発表", Paragraphs: []string{"段落A", "段落B"}},
			wantCount: 2,
			contains:  []string{"新サービス発表", "--- 段落 0 ---\n段落A", "--- 段落 1 ---\n段落B", models.DefaultPersona},
		},
		{
			name:      "title only",
			in:        prompt.Input{Title: "タイトルのみ"},
			wantCount: 0,
			contains:  []string{"タイトルのみ", "本文がありません"},
		},
		{
			name:      "persona and image",
			in:        prompt.Input{Title: "t", Paragraphs: []string{"p"}, Persona: "30代女性", Image: &models.ImageData{URL: "https://example.com/a.png", AltText: "製品写真"}, ImageNote: "画像の取得に失敗しました"},
			wantCount: 1,
			contains:  []string{"30代女性", "https://example.com/a.png", "製品写真", "画像の取得に失敗しました"},
		},
		{
			name:    "empty title and content",
			in:      prompt.Input{Title: "  ", Paragraphs: nil},
			wantErr: true,
		},
		{
			name:    "blank paragraphs only",
			in:      prompt.Input{Paragraphs: []string{" ", "\n"}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := prompt.Build(tc.in)
			if tc.wantErr {
				var verr *models.ValidationError
				require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCount, req.ParagraphCount)
			assert.Len(t, req.Paragraphs, tc.wantCount)
			for _, s := range tc.contains {
				assert.Contains(t, req.User, s)
			}
		})
	}
}

func TestBuildSystemListsEveryHook(t *testing.T) {
	req, err := prompt.Build(prompt.Input{Title: "t", Paragraphs: []string{"p"}})
	require.NoError(t, err)

	for _, h := range models.AllHooks() {
		assert.Contains(t, req.System, string(h.Type))
		assert.Contains(t, req.System, h.NameJA)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	in := prompt.Input{Title: "t", Paragraphs: []string{"a", "b", "c"}}
	first, err := prompt.Build(in)
	require.NoError(t, err)
	second, err := prompt.Build(in)
	require.NoError(t, err)

	assert.Equal(t, first.System, second.System)
	assert.Equal(t, first.User, second.User)
}

func TestBuildSchemaBoundsParagraphs(t *testing.T) {
	req, err := prompt.Build(prompt.Input{Title: "t", Paragraphs: []string{"a", "b", "c"}})
	require.NoError(t, err)

	field, ok := req.Schema.Field("paragraph_improvements")
	require.True(t, ok)
	require.NotNil(t, field.MinItems)
	require.NotNil(t, field.MaxItems)
	assert.Equal(t, 3, *field.MinItems)
	assert.Equal(t, 3, *field.MaxItems)
	assert.Contains(t, req.User, `"maxItems": 3`)
}

func TestRepairTurns(t *testing.T) {
	req, err := prompt.Build(prompt.Input{Title: "t", Paragraphs: []string{"a"}})
	require.NoError(t, err)

	turns := req.RepairTurns(`{"media_hook_evaluations":[]}`, []string{
		"media_hook_evaluations: missing hook visual_impact",
		"paragraph_improvements: expected 1 items, got 0",
	})

	require.Len(t, turns, 3)
	assert.Equal(t, prompt.RoleUser, turns[0].Role)
	assert.Equal(t, req.User, turns[0].Text)
	assert.Equal(t, prompt.RoleModel, turns[1].Role)
	assert.Equal(t, prompt.RoleUser, turns[2].Role)
	assert.Contains(t, turns[2].Text, "visual_impact")
	assert.Contains(t, turns[2].Text, "expected 1 items")
	assert.True(t, strings.HasPrefix(turns[2].Text, "直前の出力"))
}

func TestRepairTurnsWithoutPreviousOutput(t *testing.T) {
	req, err := prompt.Build(prompt.Input{Title: "t"})
	require.NoError(t, err)

	turns := req.RepairTurns("", []string{"invalid_json: empty response"})
	require.Len(t, turns, 2)
	assert.Equal(t, prompt.RoleUser, turns[1].Role)
}
