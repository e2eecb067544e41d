package extractor

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"press-lens/models"
	"press-lens/prompt"
)

// ViolationCode 는 검증 실패 종류다.
type ViolationCode string

const (
	CodeInvalidJSON     ViolationCode = "invalid_json"
	CodeMissingField    ViolationCode = "missing_field"
	CodeWrongType       ViolationCode = "wrong_type"
	CodeEmptyField      ViolationCode = "empty_field"
	CodeUnknownHook     ViolationCode = "unknown_hook"
	CodeDuplicateHook   ViolationCode = "duplicate_hook"
	CodeMissingHook     ViolationCode = "missing_hook"
	CodeScoreNotInteger ViolationCode = "score_not_integer"
	CodeScoreOutOfRange ViolationCode = "score_out_of_range"
	CodeCountMismatch   ViolationCode = "count_mismatch"
	CodeIndexOutOfRange ViolationCode = "index_out_of_range"
	CodeDuplicateIndex  ViolationCode = "duplicate_index"
	CodeMissingIndex    ViolationCode = "missing_index"
	CodeInvalidPriority ViolationCode = "invalid_priority"
)

// Violation 은 모델 출력이 목표 스키마를 어긴 지점 하나다.
type Violation struct {
	Path    string        `json:"path" bson:"path"`
	Code    ViolationCode `json:"code" bson:"code"`
	Message string        `json:"message" bson:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return fmt.Sprintf("[%s] %s", v.Code, v.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", v.Path, v.Code, v.Message)
}

func violationStrings(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.String())
	}
	return out
}

type validator struct {
	req        *prompt.Request
	violations []Violation
	warnings   []string
}

func (v *validator) add(path string, code ViolationCode, format string, args ...any) {
	v.violations = append(v.violations, Violation{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
}

// Validate 는 디코딩된 응답을 검사해 모든 위반 사항과 경고를 반환한다.
// 위반이 없을 때만 반환된 StructuredAnalysis 를 사용할 수 있다.
// total_score 와 original_text 는 조립 단계에서 다시 계산하므로 여기서 거부하지 않는다.
func Validate(doc map[string]any, req *prompt.Request) (models.StructuredAnalysis, []Violation, []string) {
	v := &validator{req: req}
	var out models.StructuredAnalysis

	out.MediaHookEvaluations = v.hooks(doc)
	out.ParagraphImprovements = v.paragraphs(doc)
	out.OverallAssessment, out.HasTotalScore = v.overall(doc)

	return out, v.violations, v.warnings
}

func (v *validator) array(doc map[string]any, key string) ([]any, bool) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		v.add(key, CodeMissingField, "field is required")
		return nil, false
	}
	arr, ok := raw.([]any)
	if !ok {
		v.add(key, CodeWrongType, "expected array, got %s", jsonKind(raw))
		return nil, false
	}
	return arr, true
}

// stringField 는 문자열 필드를 읽는다. required 이면 비어 있을 때 위반으로 기록한다.
func (v *validator) stringField(obj map[string]any, path, key string, required bool) string {
	raw, ok := obj[key]
	if !ok || raw == nil {
		if required {
			v.add(path+"."+key, CodeMissingField, "field is required")
		}
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		v.add(path+"."+key, CodeWrongType, "expected string, got %s", jsonKind(raw))
		return ""
	}
	if required && strings.TrimSpace(s) == "" {
		v.add(path+"."+key, CodeEmptyField, "must not be empty")
	}
	return s
}

// stringList 는 문자열 배열을 읽는다. 값이 없으면 빈 배열이다. 공백 항목은 버린다.
func (v *validator) stringList(obj map[string]any, path, key string, minItems int) []string {
	out := []string{}
	raw, ok := obj[key]
	if !ok || raw == nil {
		if minItems > 0 {
			v.add(path+"."+key, CodeMissingField, "field is required")
		}
		return out
	}
	arr, ok := raw.([]any)
	if !ok {
		v.add(path+"."+key, CodeWrongType, "expected array of strings, got %s", jsonKind(raw))
		return out
	}
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			v.add(fmt.Sprintf("%s.%s[%d]", path, key, i), CodeWrongType, "expected string, got %s", jsonKind(item))
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) < minItems {
		v.add(path+"."+key, CodeEmptyField, "must contain at least %d item(s)", minItems)
	}
	return out
}

// integer 는 정수 필드를 읽는다. 1.0 처럼 정수값인 실수는 허용한다.
func (v *validator) integer(obj map[string]any, path, key string, notIntegerCode ViolationCode) (int, bool) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		v.add(path+"."+key, CodeMissingField, "field is required")
		return 0, false
	}
	num, ok := raw.(json.Number)
	if !ok {
		v.add(path+"."+key, CodeWrongType, "expected integer, got %s", jsonKind(raw))
		return 0, false
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		v.add(path+"."+key, CodeWrongType, "invalid number %q", num.String())
		return 0, false
	}
	if f != math.Trunc(f) {
		v.add(path+"."+key, notIntegerCode, "expected integer, got %s", num.String())
		return 0, false
	}
	return int(f), true
}

func (v *validator) hooks(doc map[string]any) []models.MediaHookEvaluation {
	const key = "media_hook_evaluations"
	arr, ok := v.array(doc, key)
	if !ok {
		return nil
	}

	source := v.sourceText()
	seen := make(map[models.MediaHookType]bool, models.HookCount)
	out := make([]models.MediaHookEvaluation, 0, len(arr))
	for i, item := range arr {
		path := fmt.Sprintf("%s[%d]", key, i)
		obj, ok := item.(map[string]any)
		if !ok {
			v.add(path, CodeWrongType, "expected object, got %s", jsonKind(item))
			continue
		}

		rawType := v.stringField(obj, path, "hook_type", true)
		hook, known := models.ParseHookType(rawType)
		switch {
		case rawType == "":
		case !known:
			v.add(path+".hook_type", CodeUnknownHook, "unknown hook_type %q", rawType)
		case seen[hook]:
			v.add(path+".hook_type", CodeDuplicateHook, "hook_type %s appears more than once", hook)
		}

		score, scoreOK := v.integer(obj, path, "score", CodeScoreNotInteger)
		if scoreOK && (score < models.MinScore || score > models.MaxScore) {
			v.add(path+".score", CodeScoreOutOfRange, "score %d is outside %d..%d", score, models.MinScore, models.MaxScore)
		}

		eval := models.MediaHookEvaluation{
			HookType:        hook,
			HookNameJA:      hook.NameJA(),
			Score:           score,
			Description:     v.stringField(obj, path, "description", true),
			Examples:        v.stringList(obj, path, "examples", 0),
			CurrentElements: v.stringList(obj, path, "current_elements", 0),
		}
		for _, el := range eval.CurrentElements {
			if source != "" && !strings.Contains(source, el) {
				v.warnings = append(v.warnings, fmt.Sprintf("%s.current_elements: %q not found in press release", path, el))
			}
		}

		if known && !seen[hook] {
			seen[hook] = true
			out = append(out, eval)
		}
	}

	for _, h := range models.AllHooks() {
		if !seen[h.Type] {
			v.add(key, CodeMissingHook, "missing evaluation for hook %s (%s)", h.Type, h.NameJA)
		}
	}
	return out
}

func (v *validator) paragraphs(doc map[string]any) []models.ParagraphImprovement {
	const key = "paragraph_improvements"
	arr, ok := v.array(doc, key)
	if !ok {
		return nil
	}

	n := v.req.ParagraphCount
	if len(arr) != n {
		v.add(key, CodeCountMismatch, "expected %d items, got %d", n, len(arr))
	}

	seen := make(map[int]bool, n)
	out := make([]models.ParagraphImprovement, 0, len(arr))
	for i, item := range arr {
		path := fmt.Sprintf("%s[%d]", key, i)
		obj, ok := item.(map[string]any)
		if !ok {
			v.add(path, CodeWrongType, "expected object, got %s", jsonKind(item))
			continue
		}

		idx, idxOK := v.integer(obj, path, "paragraph_index", CodeWrongType)
		switch {
		case !idxOK:
		case idx < 0 || idx >= n:
			v.add(path+".paragraph_index", CodeIndexOutOfRange, "paragraph_index %d is outside 0..%d", idx, n-1)
			idxOK = false
		case seen[idx]:
			v.add(path+".paragraph_index", CodeDuplicateIndex, "paragraph_index %d appears more than once", idx)
			idxOK = false
		}

		rawPriority := v.stringField(obj, path, "priority", true)
		priority, priorityOK := models.ParsePriority(rawPriority)
		if rawPriority != "" && !priorityOK {
			v.add(path+".priority", CodeInvalidPriority, "priority %q is not one of high, medium, low", rawPriority)
		}

		p := models.ParagraphImprovement{
			ParagraphIndex:  idx,
			OriginalText:    v.stringField(obj, path, "original_text", false),
			ImprovedText:    v.stringField(obj, path, "improved_text", false),
			Improvements:    v.stringList(obj, path, "improvements", 0),
			Priority:        priority,
			ApplicableHooks: v.applicableHooks(obj, path),
		}
		if idxOK {
			seen[idx] = true
			out = append(out, p)
		}
	}

	for i := 0; i < n; i++ {
		if !seen[i] {
			v.add(key, CodeMissingIndex, "missing improvement for paragraph_index %d", i)
		}
	}
	return out
}

func (v *validator) applicableHooks(obj map[string]any, path string) []models.MediaHookType {
	out := []models.MediaHookType{}
	names := v.stringList(obj, path, "applicable_hooks", 0)
	dup := make(map[models.MediaHookType]bool, len(names))
	for i, name := range names {
		hook, ok := models.ParseHookType(name)
		if !ok {
			v.add(fmt.Sprintf("%s.applicable_hooks[%d]", path, i), CodeUnknownHook, "unknown hook_type %q", name)
			continue
		}
		if !dup[hook] {
			dup[hook] = true
			out = append(out, hook)
		}
	}
	return out
}

func (v *validator) overall(doc map[string]any) (models.OverallAssessment, bool) {
	const key = "overall_assessment"
	raw, ok := doc[key]
	if !ok || raw == nil {
		v.add(key, CodeMissingField, "field is required")
		return models.OverallAssessment{}, false
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		v.add(key, CodeWrongType, "expected object, got %s", jsonKind(raw))
		return models.OverallAssessment{}, false
	}

	out := models.OverallAssessment{
		Strengths:          v.stringList(obj, key, "strengths", 1),
		Weaknesses:         v.stringList(obj, key, "weaknesses", 1),
		TopRecommendations: v.stringList(obj, key, "top_recommendations", 1),
		EstimatedImpact:    v.stringField(obj, key, "estimated_impact", false),
	}

	hasTotal := false
	if num, ok := obj["total_score"].(json.Number); ok {
		if f, err := num.Float64(); err == nil {
			out.TotalScore = f
			hasTotal = true
		}
	}
	return out, hasTotal
}

func (v *validator) sourceText() string {
	if v.req == nil {
		return ""
	}
	return v.req.Title + "\n" + strings.Join(v.req.Paragraphs, "\n")
}
