// Package quota 는 LLM 호출 전에 적용하는 프로세스 단위 호출 한도다.
package quota

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"press-lens/config"
)

// AnalysisQuotaLimiter 는 분석용 LLM 호출의 분당 속도와 일일 총량을 제한한다.
// 카운터는 인메모리이며 재시작하면 초기화된다.
type AnalysisQuotaLimiter struct {
	// pace 가 nil 이면 분당 제한이 없다.
	pace *rate.Limiter

	mu         sync.Mutex
	dailyLimit int
	usedToday  int
	dayKey     string

	now func() time.Time
}

// NewAnalysisQuotaLimiter 는 analysis_quota 설정으로 리미터를 만든다. 0 이하인 항목은 제한하지 않는다.
func NewAnalysisQuotaLimiter(q config.AnalysisQuotaConfig) *AnalysisQuotaLimiter {
	l := &AnalysisQuotaLimiter{dailyLimit: max(q.RequestsPerDay, 0), now: time.Now}
	if q.RequestsPerMinute > 0 {
		l.pace = rate.NewLimiter(rate.Every(time.Minute/time.Duration(q.RequestsPerMinute)), 1)
	}
	return l
}

// WaitAndReserve 는 일일 한도에서 1회를 예약하고 분당 속도에 맞춰 대기한다.
// 일일 한도가 소진되었으면 (false, nil) 이며 호출자는 LLM 을 호출하지 않는다.
// 대기 중 ctx 가 끝나면 예약을 되돌리고 (false, ctx.Err()) 를 반환한다.
func (l *AnalysisQuotaLimiter) WaitAndReserve(ctx context.Context) (bool, error) {
	if l == nil {
		return true, nil
	}
	if !l.reserveDaily() {
		return false, nil
	}
	if l.pace == nil {
		return true, nil
	}

	r := l.pace.Reserve()
	delay := r.Delay()
	if delay <= 0 {
		return true, nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true, nil
	case <-ctx.Done():
		r.Cancel()
		l.releaseDaily()
		return false, ctx.Err()
	}
}

func (l *AnalysisQuotaLimiter) reserveDaily() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if key := l.now().UTC().Format(time.DateOnly); key != l.dayKey {
		l.dayKey, l.usedToday = key, 0
	}
	if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
		return false
	}
	l.usedToday++
	return true
}

func (l *AnalysisQuotaLimiter) releaseDaily() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.usedToday > 0 {
		l.usedToday--
	}
}

// Used 는 오늘 예약된 호출 수다.
func (l *AnalysisQuotaLimiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.usedToday
}
