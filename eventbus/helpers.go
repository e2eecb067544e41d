package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// clampMaxRetry 는 0 이하이거나 재시도 토픽 수를 넘는 값을 재시도 토픽 수로 맞춘다.
func clampMaxRetry(n int) int {
	if n <= 0 || n > len(RetryDelays) {
		return len(RetryDelays)
	}
	return n
}

// NewJSONEvent 는 payload 를 JSON 으로 담은 새 이벤트다. id 가 비면 UUID 를 쓴다.
func NewJSONEvent(id, eventType string, payload any, maxRetry int) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return Event{ID: id, Type: eventType, Payload: b, MaxRetry: clampMaxRetry(maxRetry)}, nil
}

// DecodeJSON 은 evt.Payload 를 T 로 디코딩한다.
func DecodeJSON[T any](evt Event) (out T, err error) {
	if err = json.Unmarshal(evt.Payload, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s payload of event %s: %w", evt.Type, evt.ID, err)
	}
	return out, nil
}

// SubscribeJSON 은 payload 를 T 로 디코딩해 handler 에 넘긴다.
// 디코딩 실패는 재시도해도 같으므로 Permanent 로 커밋된다.
func SubscribeJSON[T any](ctx context.Context, bus EventBus, groupID string, topic Topic, handler func(ctx context.Context, payload T, meta Event) error) error {
	return bus.Subscribe(ctx, groupID, topic, func(ctx context.Context, evt Event) error {
		v, err := DecodeJSON[T](evt)
		if err != nil {
			return Permanent(err)
		}
		return handler(ctx, v, evt)
	})
}
