package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errEmptyResponse = errors.New("empty response")

// cleanJSONResponse 는 마크다운 코드 펜스와 JSON 앞뒤의 설명문을 제거한다.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}

// decodeObject 는 응답을 JSON 객체로 해석한다. 숫자는 json.Number 로 남겨 정수 여부를 검사할 수 있게 한다.
func decodeObject(text string) (map[string]any, error) {
	cleaned := cleanJSONResponse(text)
	if cleaned == "" {
		return nil, errEmptyResponse
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected trailing data after JSON object")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level value is %s, not an object", jsonKind(v))
	}
	return obj, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
