package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// Reason 은 추출 실패 분류다.
type Reason string

const (
	ReasonSchemaViolation Reason = "schema_violation"
	ReasonProviderError   Reason = "provider_error"
	ReasonTimeout         Reason = "timeout"
	ReasonCanceled        Reason = "canceled"
)

// ErrQuotaExceeded 는 일일 LLM 호출 한도를 모두 쓴 경우다. 재시도하지 않는다.
var ErrQuotaExceeded = errors.New("daily llm quota exceeded")

// ExtractionError 는 Extract 가 반환하는 유일한 에러 타입이다.
type ExtractionError struct {
	Reason     Reason
	Model      string
	Attempts   int
	Violations []Violation
	Cause      error
	Log        []AttemptLog
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extraction failed (%s) after %d attempt(s) with model %s", e.Reason, e.Attempts, e.Model)
	if len(e.Violations) > 0 {
		msg += ": " + strings.Join(violationStrings(e.Violations), "; ")
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Cause }
