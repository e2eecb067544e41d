package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want []string
	}{
		{name: "empty", body: "", want: []string{}},
		{name: "whitespace only", body: " \n\t\n  \r\n", want: []string{}},
		{name: "single paragraph", body: "  第一段落。  ", want: []string{"第一段落。"}},
		{name: "blank line separation", body: "第一段落。\n\n第二段落。", want: []string{"第一段落。", "第二段落。"}},
		{name: "crlf and multiple blank lines", body: "a\r\n\r\n\r\nb\r\nc", want: []string{"a", "b\nc"}},
		{name: "blank line with spaces", body: "a\n   \nb", want: []string{"a", "b"}},
		{name: "markdown rule dropped", body: "# 見出し\n\n---\n\n本文", want: []string{"# 見出し", "本文"}},
		{name: "spaced rule dropped", body: "a\n\n* * *\n\nb", want: []string{"a", "b"}},
		{name: "list kept", body: "- 項目1\n- 項目2", want: []string{"- 項目1\n- 項目2"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, Segment(testCase.body))
		})
	}
}

func TestSegmentIsIdempotent(t *testing.T) {
	bodies := []string{
		"",
		"第一段落。\n\n第二段落。",
		"  lead  \n\n\n\n body line 1\nbody line 2 \n\n---\n\n ___ \n\nfooter",
		"\r\n\r\nx\r\ny\r\n\r\n",
	}
	for _, body := range bodies {
		first := Segment(body)
		second := Segment(Join(first))
		assert.Equal(t, first, second, "body=%q", body)
	}
}

func TestIsThematicBreak(t *testing.T) {
	assert.True(t, isThematicBreak("---"))
	assert.True(t, isThematicBreak("_ _ _ _"))
	assert.False(t, isThematicBreak("--"))
	assert.False(t, isThematicBreak("-*-"))
	assert.False(t, isThematicBreak("--- a"))
}
