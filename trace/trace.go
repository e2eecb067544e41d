// Package trace 는 요청 단위 request_id 와 LLM 호출 단위 span 번호를 context 로 전달한다.
package trace

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

type ctxKey struct{}

// RequestIDPrefix 는 응답의 request_id 접두어다.
const RequestIDPrefix = "req_"

// maxIncomingID 보다 긴 외부 request id 는 받지 않는다.
const maxIncomingID = 128

// span 은 하나의 요청 안에서 LLM 호출마다 1 씩 늘어난다.
type span struct {
	requestID string
	seq       atomic.Int64
}

// GenerateID 는 "req_" + UUID 형식의 요청 ID 를 만든다.
func GenerateID() string {
	return RequestIDPrefix + uuid.NewString()
}

// AcceptID 는 클라이언트가 보낸 request id 를 쓸 수 있으면 그대로, 아니면 새 ID 를 돌려준다.
// 비어 있거나 너무 길거나 출력 불가능한 ASCII 가 섞인 값은 버린다.
func AcceptID(incoming string) string {
	if incoming == "" || len(incoming) > maxIncomingID {
		return GenerateID()
	}
	for i := 0; i < len(incoming); i++ {
		if c := incoming[i]; c < 0x21 || c > 0x7e {
			return GenerateID()
		}
	}
	return incoming
}

// WithRequest 는 requestID 와 0 번 span 을 담은 context 를 만든다.
func WithRequest(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, &span{requestID: requestID})
}

func fromContext(ctx context.Context) *span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(ctxKey{}).(*span)
	return s
}

// RequestIDFromContext 는 context 의 request id 다. 없으면 빈 문자열.
func RequestIDFromContext(ctx context.Context) string {
	if s := fromContext(ctx); s != nil {
		return s.requestID
	}
	return ""
}

// CurrentSpanID 는 마지막으로 발급된 span 번호다. 트레이스가 없으면 "0".
func CurrentSpanID(ctx context.Context) string {
	if s := fromContext(ctx); s != nil {
		return strconv.FormatInt(s.seq.Load(), 10)
	}
	return "0"
}

// NextSpanID 는 span 번호를 하나 올리고 (requestID, spanID) 를 돌려준다.
func NextSpanID(ctx context.Context) (string, string) {
	s := fromContext(ctx)
	if s == nil {
		return "", "0"
	}
	return s.requestID, strconv.FormatInt(s.seq.Add(1), 10)
}
