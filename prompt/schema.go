package prompt

import (
	"encoding/json"

	"press-lens/models"
)

// JSONSchema 는 FieldSpec 을 JSON Schema 형태의 map 으로 바꾼다.
// OpenAI/Anthropic 프롬프트와 사용자 프롬프트의 스키마 텍스트에 같이 쓰인다.
func JSONSchema(f models.FieldSpec) map[string]any {
	out := map[string]any{"type": string(f.Type)}
	if f.Description != "" {
		out["description"] = f.Description
	}
	if len(f.Enum) > 0 {
		out["enum"] = f.Enum
	}
	if f.Minimum != nil {
		out["minimum"] = *f.Minimum
	}
	if f.Maximum != nil {
		out["maximum"] = *f.Maximum
	}
	if f.MinItems != nil {
		out["minItems"] = *f.MinItems
	}
	if f.MaxItems != nil {
		out["maxItems"] = *f.MaxItems
	}
	if f.Items != nil {
		out["items"] = JSONSchema(*f.Items)
	}
	if len(f.Fields) > 0 {
		props := make(map[string]any, len(f.Fields))
		for _, c := range f.Fields {
			props[c.Name] = JSONSchema(c)
		}
		out["properties"] = props
		if req := f.Required(); len(req) > 0 {
			out["required"] = req
		}
	}
	return out
}

// RenderSchema 는 프롬프트에 넣을 스키마 텍스트다. map 키는 정렬되어 출력되므로 결과는 결정적이다.
func RenderSchema(f models.FieldSpec) string {
	b, err := json.MarshalIndent(JSONSchema(f), "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
