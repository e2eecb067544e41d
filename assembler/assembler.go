package assembler

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"press-lens/extractor"
	"press-lens/models"
	"press-lens/trace"
)

// Assembler 는 검증된 추출 결과에 메타데이터를 붙여 최종 응답을 만든다.
type Assembler struct {
	Now   func() time.Time
	NewID func() string
}

func New() *Assembler {
	return &Assembler{Now: time.Now, NewID: trace.GenerateID}
}

// Corrections 는 조립 과정에서 모델 출력을 덮어쓴 내역이다. 로그 용도로만 쓴다.
type Corrections struct {
	HookNames     []models.MediaHookType
	OriginalTexts []int
	TotalScore    *TotalScoreCorrection
}

type TotalScoreCorrection struct {
	Reported float64
	Computed float64
	Missing  bool
}

func (c Corrections) Empty() bool {
	return len(c.HookNames) == 0 && len(c.OriginalTexts) == 0 && c.TotalScore == nil
}

// Measure 는 추출 호출에 걸린 시간만 잰다.
func (a *Assembler) Measure(ctx context.Context, fn func(ctx context.Context) (*extractor.Result, error)) (*extractor.Result, time.Duration, error) {
	start := a.now()
	res, err := fn(ctx)
	return res, a.now().Sub(start), err
}

// Assemble 은 응답을 조립한다. paragraphs 는 세그먼터 출력이며 original_text 의 기준이다.
// requestID 가 비어 있으면 새로 만든다.
func (a *Assembler) Assemble(requestID string, result *extractor.Result, paragraphs []string, elapsed time.Duration) (*models.PressReleaseAnalysisResponse, Corrections) {
	var corr Corrections
	analysis := result.Analysis

	evals := make([]models.MediaHookEvaluation, len(analysis.MediaHookEvaluations))
	copy(evals, analysis.MediaHookEvaluations)
	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].HookType.Order() < evals[j].HookType.Order()
	})
	for i := range evals {
		if name := evals[i].HookType.NameJA(); evals[i].HookNameJA != name {
			evals[i].HookNameJA = name
			corr.HookNames = append(corr.HookNames, evals[i].HookType)
		}
		evals[i].Examples = nonNil(evals[i].Examples)
		evals[i].CurrentElements = nonNil(evals[i].CurrentElements)
	}

	improvements := make([]models.ParagraphImprovement, len(analysis.ParagraphImprovements))
	copy(improvements, analysis.ParagraphImprovements)
	sort.SliceStable(improvements, func(i, j int) bool {
		return improvements[i].ParagraphIndex < improvements[j].ParagraphIndex
	})
	for i := range improvements {
		idx := improvements[i].ParagraphIndex
		if idx >= 0 && idx < len(paragraphs) && improvements[i].OriginalText != paragraphs[idx] {
			improvements[i].OriginalText = paragraphs[idx]
			corr.OriginalTexts = append(corr.OriginalTexts, idx)
		}
		improvements[i].Improvements = nonNil(improvements[i].Improvements)
		if improvements[i].ApplicableHooks == nil {
			improvements[i].ApplicableHooks = []models.MediaHookType{}
		}
	}

	overall := analysis.OverallAssessment
	computed := TotalScore(evals)
	if !analysis.HasTotalScore || overall.TotalScore != computed {
		corr.TotalScore = &TotalScoreCorrection{Reported: overall.TotalScore, Computed: computed, Missing: !analysis.HasTotalScore}
		overall.TotalScore = computed
	}
	overall.Strengths = nonNil(overall.Strengths)
	overall.Weaknesses = nonNil(overall.Weaknesses)
	overall.TopRecommendations = nonNil(overall.TopRecommendations)

	if requestID == "" {
		requestID = a.newID()
	}
	return &models.PressReleaseAnalysisResponse{
		RequestID:             requestID,
		AnalyzedAt:            a.now(),
		MediaHookEvaluations:  evals,
		ParagraphImprovements: improvements,
		OverallAssessment:     overall,
		ProcessingTimeMs:      elapsed.Milliseconds(),
		AIModelUsed:           result.Model,
	}, corr
}

// TotalScore 는 점수 평균을 소수 첫째 자리에서 반올림한 값이다.
func TotalScore(evals []models.MediaHookEvaluation) float64 {
	if len(evals) == 0 {
		return 0
	}
	sum := 0
	for _, e := range evals {
		sum += e.Score
	}
	return math.Round(float64(sum)/float64(len(evals))*10) / 10
}

func (c Corrections) String() string {
	s := fmt.Sprintf("hook_names=%v original_texts=%v", c.HookNames, c.OriginalTexts)
	if c.TotalScore != nil {
		s += fmt.Sprintf(" total_score=%.1f->%.1f", c.TotalScore.Reported, c.TotalScore.Computed)
	}
	return s
}

func (a *Assembler) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *Assembler) newID() string {
	if a.NewID == nil {
		return trace.GenerateID()
	}
	return a.NewID()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
