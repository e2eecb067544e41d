package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookTable(t *testing.T) {
	hooks := AllHooks()
	require.Len(t, hooks, HookCount)

	seen := map[MediaHookType]bool{}
	for i, h := range hooks {
		assert.False(t, seen[h.Type], "duplicate hook %s", h.Type)
		seen[h.Type] = true
		assert.NotEmpty(t, h.NameJA)
		assert.NotEmpty(t, h.Rubric)
		assert.Equal(t, i, h.Type.Order())
		assert.True(t, h.Type.Valid())
	}

	assert.Equal(t, HookTrendingSeasonal, hooks[0].Type)
	assert.Equal(t, HookVisualImpact, hooks[HookCount-1].Type)
	assert.Equal(t, "新規性・独自性", HookNoveltyUniqueness.NameJA())
}

func TestAllHooksReturnsCopy(t *testing.T) {
	hooks := AllHooks()
	hooks[0].NameJA = "changed"
	assert.Equal(t, "時流・季節性", HookTrendingSeasonal.NameJA())
}

func TestParseHookType(t *testing.T) {
	testCases := []struct {
		in   string
		want MediaHookType
		ok   bool
	}{
		{in: "regional", want: HookRegional, ok: true},
		{in: " Visual_Impact ", want: HookVisualImpact, ok: true},
		{in: "celebrity", ok: false},
		{in: "", ok: false},
	}
	for _, tc := range testCases {
		got, ok := ParseHookType(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	unknown := MediaHookType("celebrity")
	assert.False(t, unknown.Valid())
	assert.Equal(t, HookCount, unknown.Order())
	assert.Equal(t, "", unknown.NameJA())
}

func TestParsePriority(t *testing.T) {
	p, ok := ParsePriority(" HIGH ")
	assert.True(t, ok)
	assert.Equal(t, PriorityHigh, p)

	_, ok = ParsePriority("critical")
	assert.False(t, ok)
}

func TestAnalyzeRequestHelpers(t *testing.T) {
	assert.Equal(t, "new", AnalyzeRequest{Content: "new", ContentMarkdown: "old"}.Body())
	assert.Equal(t, "old", AnalyzeRequest{ContentMarkdown: "old"}.Body())

	assert.Equal(t, DefaultPersona, AnalyzeRequest{}.Persona())
	assert.Equal(t, DefaultPersona, AnalyzeRequest{Metadata: map[string]any{"persona": 3}}.Persona())
	assert.Equal(t, "20代女性", AnalyzeRequest{Metadata: map[string]any{"persona": "20代女性"}}.Persona())
}

func TestAnalysisSchema(t *testing.T) {
	schema := AnalysisSchema(3)
	assert.ElementsMatch(t, []string{"media_hook_evaluations", "paragraph_improvements", "overall_assessment"}, schema.Required())

	hooks, ok := schema.Field("media_hook_evaluations")
	require.True(t, ok)
	assert.Equal(t, HookCount, *hooks.MinItems)
	assert.Equal(t, HookCount, *hooks.MaxItems)
	hookType, ok := hooks.Items.Field("hook_type")
	require.True(t, ok)
	assert.Len(t, hookType.Enum, HookCount)

	paragraphs, ok := schema.Field("paragraph_improvements")
	require.True(t, ok)
	assert.Equal(t, 3, *paragraphs.MaxItems)
	index, ok := paragraphs.Items.Field("paragraph_index")
	require.True(t, ok)
	assert.Equal(t, 2.0, *index.Maximum)

	overall, ok := schema.Field("overall_assessment")
	require.True(t, ok)
	assert.NotContains(t, overall.Required(), "total_score")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "too long")
	assert.Equal(t, "validation error: title: too long", err.Error())
}
