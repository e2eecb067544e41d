// Package extractor turns one prompt into a validated StructuredAnalysis,
// retrying with repair turns and falling back to a secondary model.
package extractor

import (
	"context"
	"errors"
	"time"

	"press-lens/logger"
	"press-lens/models"
	"press-lens/prompt"
	"press-lens/trace"
)

// Target 은 provider 와 모델 이름의 쌍이다.
type Target struct {
	Provider Provider
	Model    string
}

type Config struct {
	Primary           Target
	Fallback          *Target
	MaxRetries        int
	TimeoutPerAttempt time.Duration
	Temperature       float32
	MaxOutputTokens   int32
	BackoffBase       time.Duration
	BackoffMax        time.Duration
}

const (
	DefaultBackoffBase = 500 * time.Millisecond
	DefaultBackoffMax  = 5 * time.Second
)

// Limiter 는 LLM 호출 전에 한도를 예약한다. quota.AnalysisQuotaLimiter 가 구현한다.
type Limiter interface {
	WaitAndReserve(ctx context.Context) (bool, error)
}

// Outcome 은 시도 1회의 결과다.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeSchemaViolation Outcome = "schema_violation"
	OutcomeProviderError   Outcome = "provider_error"
	OutcomeTimeout         Outcome = "timeout"
	OutcomeCanceled        Outcome = "canceled"
)

// AttemptLog 는 LLM 호출 1회의 기록이다. ai_logs 컬렉션에 저장된다.
type AttemptLog struct {
	Attempt      int
	Provider     string
	Model        string
	ModelVersion string
	Repair       bool
	StartedAt    time.Time
	Duration     time.Duration
	Usage        Usage
	Outcome      Outcome
	Violations   []string
	Error        string
	Prompt       string
	Response     string
}

// Result 는 검증을 통과한 추출 결과다.
type Result struct {
	Analysis models.StructuredAnalysis
	Model    string
	Provider string
	Attempts int
	Warnings []string
	Log      []AttemptLog
}

type Extractor struct {
	cfg     Config
	limiter Limiter
	sleep   func(ctx context.Context, d time.Duration) error
}

// New 는 Extractor 를 만든다. limiter 가 nil 이면 한도를 적용하지 않는다.
func New(cfg Config, limiter Limiter) *Extractor {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = DefaultBackoffBase
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = DefaultBackoffMax
	}
	return &Extractor{cfg: cfg, limiter: limiter, sleep: sleepContext}
}

// MaxAttempts 는 1 + max_retries 다.
func (e *Extractor) MaxAttempts() int {
	return 1 + e.cfg.MaxRetries
}

// Deadline 은 모든 시도가 시간 초과되고 매번 백오프했을 때의 총 소요 시간에 margin 을 더한 값이다.
func (e *Extractor) Deadline(margin time.Duration) time.Duration {
	total := time.Duration(e.MaxAttempts()) * e.cfg.TimeoutPerAttempt
	for i := 0; i < e.MaxAttempts()-1; i++ {
		total += e.backoff(i)
	}
	return total + margin
}

func (e *Extractor) backoff(n int) time.Duration {
	d := e.cfg.BackoffBase
	for i := 0; i < n && d < e.cfg.BackoffMax; i++ {
		d *= 2
	}
	if d > e.cfg.BackoffMax {
		d = e.cfg.BackoffMax
	}
	return d
}

// Extract 는 최대 MaxAttempts 번 호출해 검증을 통과한 분석 결과를 돌려준다.
// 실패하면 항상 *ExtractionError 를 반환한다.
func (e *Extractor) Extract(ctx context.Context, req *prompt.Request) (*Result, error) {
	target := e.cfg.Primary
	attempts := e.MaxAttempts()

	var (
		logs           []AttemptLog
		lastReason     Reason
		lastCause      error
		lastViolations []Violation
		prevOutput     string
		prevViolations []string
		providerFails  int
		onFallback     bool
	)

	fail := func(reason Reason, model string, n int, violations []Violation, cause error) error {
		return &ExtractionError{Reason: reason, Model: model, Attempts: n, Violations: violations, Cause: cause, Log: logs}
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fail(contextReason(err), target.Model, attempt-1, nil, err)
		}

		if e.limiter != nil {
			ok, err := e.limiter.WaitAndReserve(ctx)
			if err != nil {
				return nil, fail(contextReason(err), target.Model, attempt-1, nil, err)
			}
			if !ok {
				return nil, fail(ReasonProviderError, target.Model, attempt-1, nil, ErrQuotaExceeded)
			}
		}

		repair := len(prevViolations) > 0
		turns := req.Turns()
		if repair {
			turns = req.RepairTurns(prevOutput, prevViolations)
		}
		call := Call{
			Model:           target.Model,
			System:          req.System,
			Turns:           turns,
			Schema:          req.Schema,
			Image:           req.Image,
			Temperature:     e.cfg.Temperature,
			MaxOutputTokens: e.cfg.MaxOutputTokens,
		}

		requestID, spanID := trace.NextSpanID(ctx)
		entry := AttemptLog{
			Attempt:   attempt,
			Provider:  target.Provider.Name(),
			Model:     target.Model,
			Repair:    repair,
			StartedAt: time.Now(),
			Prompt:    call.transcript(),
		}

		attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.TimeoutPerAttempt)
		reply, err := target.Provider.Generate(attemptCtx, call)
		attemptErr := attemptCtx.Err()
		cancel()
		entry.Duration = time.Since(entry.StartedAt)

		if parentErr := ctx.Err(); parentErr != nil {
			entry.Outcome = OutcomeCanceled
			entry.Error = parentErr.Error()
			logs = append(logs, entry)
			return nil, fail(contextReason(parentErr), target.Model, attempt, nil, parentErr)
		}

		if err != nil {
			reason := ReasonProviderError
			entry.Outcome = OutcomeProviderError
			if errors.Is(attemptErr, context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
				reason = ReasonTimeout
				entry.Outcome = OutcomeTimeout
			}
			entry.Error = err.Error()
			logs = append(logs, entry)
			lastReason, lastCause, lastViolations = reason, err, nil

			logger.WarnWithFields("llm attempt failed", logger.Fields{
				"request_id": requestID,
				"span_id":    spanID,
				"attempt":    attempt,
				"provider":   entry.Provider,
				"model":      target.Model,
				"outcome":    string(entry.Outcome),
				"error":      err.Error(),
			})

			if attempt == attempts {
				break
			}
			if e.cfg.Fallback != nil && !onFallback {
				target, onFallback = *e.cfg.Fallback, true
			}
			if err := e.sleep(ctx, e.backoff(providerFails)); err != nil {
				return nil, fail(contextReason(err), target.Model, attempt, nil, err)
			}
			providerFails++
			continue
		}

		entry.Response = reply.Text
		entry.ModelVersion = reply.ModelVersion
		entry.Usage = reply.Usage

		var (
			analysis   models.StructuredAnalysis
			violations []Violation
			warnings   []string
		)
		doc, derr := decodeObject(reply.Text)
		if derr != nil {
			violations = []Violation{{Code: CodeInvalidJSON, Message: derr.Error()}}
		} else {
			analysis, violations, warnings = Validate(doc, req)
		}

		if len(violations) == 0 {
			entry.Outcome = OutcomeOK
			logs = append(logs, entry)
			if len(warnings) > 0 {
				logger.WarnWithFields("llm output has untraceable elements", logger.Fields{
					"request_id": requestID,
					"model":      target.Model,
					"warnings":   warnings,
				})
			}
			return &Result{
				Analysis: analysis,
				Model:    target.Model,
				Provider: target.Provider.Name(),
				Attempts: attempt,
				Warnings: warnings,
				Log:      logs,
			}, nil
		}

		entry.Outcome = OutcomeSchemaViolation
		entry.Violations = violationStrings(violations)
		logs = append(logs, entry)
		lastReason, lastCause, lastViolations = ReasonSchemaViolation, nil, violations
		prevOutput, prevViolations = reply.Text, entry.Violations

		logger.WarnWithFields("llm output rejected", logger.Fields{
			"request_id": requestID,
			"span_id":    spanID,
			"attempt":    attempt,
			"model":      target.Model,
			"violations": entry.Violations,
		})
	}

	return nil, fail(lastReason, target.Model, attempts, lastViolations, lastCause)
}

func contextReason(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return ReasonCanceled
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
