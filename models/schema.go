package models

// FieldType 은 스키마 필드의 JSON 타입이다.
type FieldType string

const (
	FieldObject  FieldType = "object"
	FieldArray   FieldType = "array"
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldNumber  FieldType = "number"
)

// FieldSpec 은 모델이 채워야 하는 응답 스키마의 한 필드를 기술한다.
// Gemini response schema, 프롬프트에 넣는 스키마 텍스트, 검증기의 열거값이 모두 이 트리에서 나온다.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string
	Enum        []string
	Minimum     *float64
	Maximum     *float64
	MinItems    *int
	MaxItems    *int
	Items       *FieldSpec
	Fields      []FieldSpec
	Optional    bool
}

// Field 는 이름으로 하위 필드를 찾는다.
func (f FieldSpec) Field(name string) (FieldSpec, bool) {
	for _, c := range f.Fields {
		if c.Name == name {
			return c, true
		}
	}
	return FieldSpec{}, false
}

// Required 는 필수 하위 필드 이름 목록이다.
func (f FieldSpec) Required() []string {
	var out []string
	for _, c := range f.Fields {
		if !c.Optional {
			out = append(out, c.Name)
		}
	}
	return out
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func hookEnum() []string {
	out := make([]string, 0, len(hookTable))
	for _, h := range hookTable {
		out = append(out, string(h.Type))
	}
	return out
}

func priorityEnum() []string {
	out := make([]string, 0, 3)
	for _, p := range AllPriorities() {
		out = append(out, string(p))
	}
	return out
}

func stringList(name, desc string, minItems int) FieldSpec {
	f := FieldSpec{
		Name:        name,
		Type:        FieldArray,
		Description: desc,
		Items:       &FieldSpec{Type: FieldString},
	}
	if minItems > 0 {
		f.MinItems = intPtr(minItems)
	}
	return f
}

// AnalysisSchema 는 문단 수 paragraphCount 에 맞춘 목표 스키마를 만든다.
func AnalysisSchema(paragraphCount int) FieldSpec {
	hook := FieldSpec{
		Type: FieldObject,
		Fields: []FieldSpec{
			{Name: "hook_type", Type: FieldString, Description: "メディアフックの種類", Enum: hookEnum()},
			{Name: "score", Type: FieldInteger, Description: "5段階評価スコア (1-5の整数)", Minimum: floatPtr(MinScore), Maximum: floatPtr(MaxScore)},
			{Name: "description", Type: FieldString, Description: "評価の説明"},
			stringList("examples", "改善例", 0),
			stringList("current_elements", "本文から引用した、現在含まれている要素", 0),
		},
	}

	maxIndex := float64(paragraphCount - 1)
	if paragraphCount == 0 {
		maxIndex = 0
	}
	paragraph := FieldSpec{
		Type: FieldObject,
		Fields: []FieldSpec{
			{Name: "paragraph_index", Type: FieldInteger, Description: "段落のインデックス（0から開始）", Minimum: floatPtr(0), Maximum: floatPtr(maxIndex)},
			{Name: "original_text", Type: FieldString, Description: "元のテキスト（そのまま転記）"},
			{Name: "improved_text", Type: FieldString, Description: "改善後のテキスト案"},
			stringList("improvements", "改善点のリスト", 0),
			{Name: "priority", Type: FieldString, Description: "改善優先度", Enum: priorityEnum()},
			{
				Name:        "applicable_hooks",
				Type:        FieldArray,
				Description: "この段落に適用可能なメディアフック",
				Items:       &FieldSpec{Type: FieldString, Enum: hookEnum()},
			},
		},
	}

	overall := FieldSpec{
		Name: "overall_assessment",
		Type: FieldObject,
		Fields: []FieldSpec{
			{Name: "total_score", Type: FieldNumber, Description: "総合スコア（9項目の平均、小数第1位）", Minimum: floatPtr(MinScore), Maximum: floatPtr(MaxScore), Optional: true},
			stringList("strengths", "強み", 1),
			stringList("weaknesses", "改善が必要な点", 1),
			stringList("top_recommendations", "最優先の改善推奨事項", 1),
			{Name: "estimated_impact", Type: FieldString, Description: "改善による期待される影響"},
		},
	}

	return FieldSpec{
		Type: FieldObject,
		Fields: []FieldSpec{
			{
				Name:        "media_hook_evaluations",
				Type:        FieldArray,
				Description: "9つのメディアフックに対する評価（各フック1回ずつ）",
				MinItems:    intPtr(HookCount),
				MaxItems:    intPtr(HookCount),
				Items:       &hook,
			},
			{
				Name:        "paragraph_improvements",
				Type:        FieldArray,
				Description: "段落ごとの改善提案（全段落1件ずつ）",
				MinItems:    intPtr(paragraphCount),
				MaxItems:    intPtr(paragraphCount),
				Items:       &paragraph,
			},
			overall,
		},
	}
}
