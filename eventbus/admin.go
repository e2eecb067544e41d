package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// TopicLayout 은 하나의 기본 토픽에 딸린 토픽들을 만드는 방식이다.
type TopicLayout struct {
	Partitions        int
	ReplicationFactor int
	// WithRetry 가 false 면 재시도 토픽을 만들지 않는다. 발행 전용 토픽용.
	WithRetry bool
}

// LayoutFor 는 토픽 용도에 맞는 기본 배치를 돌려준다. 재시도 토픽은 RetryTopics 에 속한 토픽만 갖는다.
func LayoutFor(topic Topic, partitions int) TopicLayout {
	l := TopicLayout{Partitions: partitions, ReplicationFactor: 1}
	for _, t := range RetryTopics {
		if t.Base() == topic.Base() {
			l.WithRetry = true
		}
	}
	return l
}

// TopicSpecs 는 기본 토픽, DLQ, (필요하면) 재시도 토픽의 생성 명세를 만든다.
// DLQ 는 순서 확인이 쉽도록 파티션 1개로 둔다.
func TopicSpecs(topic Topic, l TopicLayout) []kafka.TopicSpecification {
	if l.Partitions <= 0 {
		l.Partitions = 1
	}
	if l.ReplicationFactor <= 0 {
		l.ReplicationFactor = 1
	}
	spec := func(name string, partitions int) kafka.TopicSpecification {
		return kafka.TopicSpecification{Topic: name, NumPartitions: partitions, ReplicationFactor: l.ReplicationFactor}
	}

	out := []kafka.TopicSpecification{spec(topic.Base(), l.Partitions), spec(topic.DLQ(), 1)}
	if l.WithRetry {
		for _, name := range topic.GetRetryTopics() {
			out = append(out, spec(name, l.Partitions))
		}
	}
	return out
}

// EnsureTopics 는 TopicSpecs 의 토픽을 생성한다. 이미 있는 토픽은 성공으로 본다.
func EnsureTopics(ctx context.Context, brokers string, topic Topic, partitions int) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return fmt.Errorf("failed to create kafka admin client: %w", err)
	}
	defer admin.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	results, err := admin.CreateTopics(ctx, TopicSpecs(topic, LayoutFor(topic, partitions)))
	if err != nil {
		return fmt.Errorf("failed to request topic creation for %s: %w", topic.Base(), err)
	}
	for _, r := range results {
		switch r.Error.Code() {
		case kafka.ErrNoError, kafka.ErrTopicAlreadyExists:
		default:
			return fmt.Errorf("failed to create topic %s: %v", r.Topic, r.Error)
		}
	}
	return nil
}
