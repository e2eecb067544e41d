package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"press-lens/eventbus"
	"press-lens/extractor"
	"press-lens/models"
	"press-lens/repositories"
)

// scriptedProvider 는 호출 순서대로 준비된 응답을 돌려준다.
type scriptedProvider struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   []extractor.Call
}

func (p *scriptedProvider) Name() string { return "fake" }

func (p *scriptedProvider) Generate(_ context.Context, call extractor.Call) (*extractor.Reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := len(p.calls)
	p.calls = append(p.calls, call)
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	if i >= len(p.replies) {
		return nil, fmt.Errorf("unexpected call %d", i+1)
	}
	return &extractor.Reply{Text: p.replies[i], ModelVersion: "fake-001"}, nil
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func newExtractor(p extractor.Provider, retries int) *extractor.Extractor {
	return extractor.New(extractor.Config{
		Primary:           extractor.Target{Provider: p, Model: "fake-model"},
		MaxRetries:        retries,
		TimeoutPerAttempt: time.Second,
		BackoffBase:       time.Millisecond,
		BackoffMax:        time.Millisecond,
	}, nil)
}

// analysisJSON 은 paragraphs 에 맞는 올바른 모델 응답이다. scores 는 훅 순서대로 쓴다.
func analysisJSON(paragraphs []string, scores []int) string {
	hooks := make([]any, 0, models.HookCount)
	for i, h := range models.AllHookTypes() {
		score := 3
		if i < len(scores) {
			score = scores[i]
		}
		hooks = append(hooks, map[string]any{
			"hook_type":        string(h),
			"score":            score,
			"description":      "評価コメント",
			"examples":         []any{"改善例"},
			"current_elements": []any{},
		})
	}
	items := make([]any, 0, len(paragraphs))
	for i := range paragraphs {
		items = append(items, map[string]any{
			"paragraph_index":  i,
			"original_text":    "モデルが書き換えた本文",
			"improved_text":    "改善案",
			"improvements":     []any{"数字を入れる"},
			"priority":         "medium",
			"applicable_hooks": []any{"novelty_uniqueness"},
		})
	}
	b, _ := json.Marshal(map[string]any{
		"media_hook_evaluations": hooks,
		"paragraph_improvements": items,
		"overall_assessment": map[string]any{
			"total_score":         4.9,
			"strengths":           []any{"新規性"},
			"weaknesses":          []any{"地域性"},
			"top_recommendations": []any{"数値を追加"},
			"estimated_impact":    "掲載率の向上",
		},
	})
	return string(b)
}

type memoryLogs struct {
	mu   sync.Mutex
	logs []models.AILog
}

func (m *memoryLogs) InsertMany(_ context.Context, logs []models.AILog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, logs...)
	return nil
}

type fakeImages struct {
	data  []byte
	mime  string
	err   error
	calls int
}

func (f *fakeImages) FetchImage(context.Context, string) ([]byte, string, error) {
	f.calls++
	return f.data, f.mime, f.err
}

type memoryStore struct {
	mu      sync.Mutex
	records map[string]*models.AnalysisRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[string]*models.AnalysisRecord{}}
}

func (m *memoryStore) InsertPending(_ context.Context, rec *models.AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.Status = models.AnalysisPending
	cp := *rec
	m.records[rec.JobID] = &cp
	return nil
}

func (m *memoryStore) FindByJobID(_ context.Context, jobID string) (*models.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[jobID]
	if !ok {
		return nil, repositories.ErrAnalysisNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *memoryStore) MarkCompleted(_ context.Context, jobID string, result *models.PressReleaseAnalysisResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[jobID]
	if !ok {
		return repositories.ErrAnalysisNotFound
	}
	rec.Status, rec.Result = models.AnalysisCompleted, result
	return nil
}

func (m *memoryStore) MarkFailed(_ context.Context, jobID string, detail models.ErrorDetail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[jobID]
	if !ok {
		return repositories.ErrAnalysisNotFound
	}
	rec.Status, rec.Error = models.AnalysisFailed, &detail
	return nil
}

func (m *memoryStore) MarkPublished(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[jobID]
	if !ok {
		return repositories.ErrAnalysisNotFound
	}
	rec.Published = true
	return nil
}

func (m *memoryStore) ListPendingBefore(_ context.Context, before time.Time, limit int64) ([]models.AnalysisRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AnalysisRecord
	for _, rec := range m.records {
		if rec.Status == models.AnalysisPending && rec.CreatedAt.Before(before) {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type published struct {
	topic string
	event eventbus.Event
}

type memoryBus struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (b *memoryBus) onTopic(topic string) []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []eventbus.Event
	for _, p := range b.sent {
		if p.topic == topic {
			out = append(out, p.event)
		}
	}
	return out
}

func (b *memoryBus) Publish(_ context.Context, topic string, evt eventbus.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.sent = append(b.sent, published{topic: topic, event: evt})
	return nil
}
