package models

import "time"

// ImageData 는 보도자료 상단 이미지 정보다.
type ImageData struct {
	URL     string `json:"url,omitempty" bson:"url,omitempty"`
	AltText string `json:"alt_text,omitempty" bson:"alt_text,omitempty"`
}

// ContentFormat 은 본문 형식이다. 비어 있으면 markdown(plain text) 으로 취급한다.
type ContentFormat string

const (
	ContentMarkdown ContentFormat = "markdown"
	ContentHTML     ContentFormat = "html"
)

// AnalyzeRequest 는 분석 요청 입력이다.
type AnalyzeRequest struct {
	Title           string         `json:"title" bson:"title"`
	Content         string         `json:"content" bson:"content"`
	ContentMarkdown string         `json:"content_markdown,omitempty" bson:"-"`
	ContentFormat   ContentFormat  `json:"content_format,omitempty" bson:"content_format,omitempty"`
	TopImage        *ImageData     `json:"top_image,omitempty" bson:"top_image,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// DefaultPersona is used when metadata carries no persona.
const DefaultPersona = "指定なし"

// Body 는 content 를 우선하고, 없으면 구 API 의 content_markdown 을 사용한다.
func (r AnalyzeRequest) Body() string {
	if r.Content != "" {
		return r.Content
	}
	return r.ContentMarkdown
}

// Persona 는 metadata.persona 문자열을 반환한다.
func (r AnalyzeRequest) Persona() string {
	if r.Metadata == nil {
		return DefaultPersona
	}
	if p, ok := r.Metadata["persona"].(string); ok && p != "" {
		return p
	}
	return DefaultPersona
}

// MediaHookEvaluation 은 훅 하나에 대한 평가다.
type MediaHookEvaluation struct {
	HookType        MediaHookType `json:"hook_type" bson:"hook_type"`
	HookNameJA      string        `json:"hook_name_ja" bson:"hook_name_ja"`
	Score           int           `json:"score" bson:"score"`
	Description     string        `json:"description" bson:"description"`
	Examples        []string      `json:"examples" bson:"examples"`
	CurrentElements []string      `json:"current_elements" bson:"current_elements"`
}

// ParagraphImprovement 는 문단 하나에 대한 개선 제안이다.
type ParagraphImprovement struct {
	ParagraphIndex  int             `json:"paragraph_index" bson:"paragraph_index"`
	OriginalText    string          `json:"original_text" bson:"original_text"`
	ImprovedText    string          `json:"improved_text" bson:"improved_text"`
	Improvements    []string        `json:"improvements" bson:"improvements"`
	Priority        Priority        `json:"priority" bson:"priority"`
	ApplicableHooks []MediaHookType `json:"applicable_hooks" bson:"applicable_hooks"`
}

// OverallAssessment 는 전체 평가 요약이다.
type OverallAssessment struct {
	TotalScore         float64  `json:"total_score" bson:"total_score"`
	Strengths          []string `json:"strengths" bson:"strengths"`
	Weaknesses         []string `json:"weaknesses" bson:"weaknesses"`
	TopRecommendations []string `json:"top_recommendations" bson:"top_recommendations"`
	EstimatedImpact    string   `json:"estimated_impact" bson:"estimated_impact"`
}

// StructuredAnalysis 는 검증을 통과한 모델 출력이다. 메타데이터는 아직 없다.
type StructuredAnalysis struct {
	MediaHookEvaluations  []MediaHookEvaluation
	ParagraphImprovements []ParagraphImprovement
	OverallAssessment     OverallAssessment
	// HasTotalScore is false when the model omitted total_score.
	HasTotalScore bool
}

// PressReleaseAnalysisResponse 는 최종 분석 결과다. 조립 후에는 변경하지 않는다.
type PressReleaseAnalysisResponse struct {
	RequestID             string                 `json:"request_id" bson:"request_id"`
	AnalyzedAt            time.Time              `json:"analyzed_at" bson:"analyzed_at"`
	MediaHookEvaluations  []MediaHookEvaluation  `json:"media_hook_evaluations" bson:"media_hook_evaluations"`
	ParagraphImprovements []ParagraphImprovement `json:"paragraph_improvements" bson:"paragraph_improvements"`
	OverallAssessment     OverallAssessment      `json:"overall_assessment" bson:"overall_assessment"`
	ProcessingTimeMs      int64                  `json:"processing_time_ms" bson:"processing_time_ms"`
	AIModelUsed           string                 `json:"ai_model_used" bson:"ai_model_used"`
}

// ErrorDetail 는 API 에러 응답의 상세 정보다.
type ErrorDetail struct {
	Code    string `json:"code" bson:"code"`
	Message string `json:"message" bson:"message"`
	Field   string `json:"field,omitempty" bson:"field,omitempty"`
}
