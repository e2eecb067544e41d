// Package segmenter splits a press release body into the paragraphs the
// analysis schema addresses by index.
package segmenter

import "strings"

// Separator joins paragraphs back into a body that Segment splits identically.
const Separator = "\n\n"

// Segment 은 빈 줄을 기준으로 본문을 문단으로 나눈다.
// 각 문단은 앞뒤 공백을 제거하고, 비어 있거나 markdown 구분선(---, ***, ___)뿐인 조각은 버린다.
// 빈 입력이면 길이 0 의 슬라이스를 돌려준다.
func Segment(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	paragraphs := []string{}
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		p := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if p == "" || isThematicBreak(p) {
			return
		}
		paragraphs = append(paragraphs, p)
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

// Join 은 Segment 의 역연산이다. Segment(Join(Segment(x))) == Segment(x).
func Join(paragraphs []string) string {
	return strings.Join(paragraphs, Separator)
}

// isThematicBreak reports a markdown horizontal rule: three or more of the
// same '-', '*' or '_' with optional spaces in between.
func isThematicBreak(p string) bool {
	if strings.Contains(p, "\n") {
		return false
	}
	var marker rune
	count := 0
	for _, r := range p {
		switch r {
		case ' ', '\t':
			continue
		case '-', '*', '_':
			if marker == 0 {
				marker = r
			} else if r != marker {
				return false
			}
			count++
		default:
			return false
		}
	}
	return count >= 3
}
