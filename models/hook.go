package models

import "strings"

// MediaHookType 는 기자가 기사화를 판단할 때 보는 9가지 미디어 훅이다.
type MediaHookType string

const (
	HookTrendingSeasonal  MediaHookType = "trending_seasonal"
	HookUnexpectedness    MediaHookType = "unexpectedness"
	HookParadoxConflict   MediaHookType = "paradox_conflict"
	HookRegional          MediaHookType = "regional"
	HookTopicality        MediaHookType = "topicality"
	HookSocialPublic      MediaHookType = "social_public"
	HookNoveltyUniqueness MediaHookType = "novelty_uniqueness"
	HookSuperlativeRarity MediaHookType = "superlative_rarity"
	HookVisualImpact      MediaHookType = "visual_impact"
)

// HookInfo 는 훅별 고정 라벨과 평가 기준 문구다.
type HookInfo struct {
	Type   MediaHookType
	NameJA string
	Rubric string
}

// hookTable 순서가 곧 응답의 출력 순서다.
var hookTable = []HookInfo{
	{HookTrendingSeasonal, "時流・季節性", "社会のトレンドや季節イベントに関連しているか"},
	{HookUnexpectedness, "意外性", "常識を覆すような驚きがあるか"},
	{HookParadoxConflict, "逆説・対立", "一見矛盾する要素や対立構造があるか"},
	{HookRegional, "地域性", "特定の地域に密着した情報か"},
	{HookTopicality, "話題性", "現在話題の事柄と関連しているか"},
	{HookSocialPublic, "社会性・公益性", "社会問題の解決など公共の利益に貢献するか"},
	{HookNoveltyUniqueness, "新規性・独自性", "「日本初」や独自の技術など、他にはない要素があるか"},
	{HookSuperlativeRarity, "最上級・希少性", "「No.1」や「限定」など、希少価値やインパクトがあるか"},
	{HookVisualImpact, "画像・映像", "印象的で目を引くビジュアルがあるか"},
}

// HookCount 는 응답에 반드시 포함되어야 하는 훅 평가 개수다.
const HookCount = 9

// AllHooks 는 고정 순서의 훅 정보 복사본을 반환한다.
func AllHooks() []HookInfo {
	out := make([]HookInfo, len(hookTable))
	copy(out, hookTable)
	return out
}

// AllHookTypes 는 고정 순서의 훅 타입 목록이다.
func AllHookTypes() []MediaHookType {
	out := make([]MediaHookType, 0, len(hookTable))
	for _, h := range hookTable {
		out = append(out, h.Type)
	}
	return out
}

// ParseHookType 은 모델이 돌려준 문자열을 훅 타입으로 해석한다. 대소문자와 앞뒤 공백은 무시한다.
func ParseHookType(s string) (MediaHookType, bool) {
	t := MediaHookType(strings.ToLower(strings.TrimSpace(s)))
	for _, h := range hookTable {
		if h.Type == t {
			return t, true
		}
	}
	return "", false
}

// Valid reports whether t is one of the nine hooks.
func (t MediaHookType) Valid() bool {
	_, ok := t.order()
	return ok
}

// NameJA 는 훅의 고정 일본어 라벨이다. 모르는 타입이면 빈 문자열.
func (t MediaHookType) NameJA() string {
	for _, h := range hookTable {
		if h.Type == t {
			return h.NameJA
		}
	}
	return ""
}

// Order 는 출력 순서상의 위치다. 모르는 타입은 HookCount 를 반환해 맨 뒤로 보낸다.
func (t MediaHookType) Order() int {
	if i, ok := t.order(); ok {
		return i
	}
	return HookCount
}

func (t MediaHookType) order() (int, bool) {
	for i, h := range hookTable {
		if h.Type == t {
			return i, true
		}
	}
	return 0, false
}

// Priority 는 문단 개선 제안의 우선순위다.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AllPriorities 는 허용되는 우선순위 값이다.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority normalizes case and whitespace before matching.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	}
	return "", false
}

const (
	MinScore = 1
	MaxScore = 5
)
