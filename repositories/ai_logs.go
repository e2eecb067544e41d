package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"press-lens/db"
	"press-lens/models"
)

type AILogRepository struct {
	col *mongo.Collection
}

func NewAILogRepository(database *mongo.Database) *AILogRepository {
	return &AILogRepository{col: database.Collection(db.AILogsCollection)}
}

// InsertMany 는 요청 하나의 시도 로그를 한 번에 저장한다.
func (r *AILogRepository) InsertMany(ctx context.Context, logs []models.AILog) error {
	if len(logs) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(logs))
	for _, l := range logs {
		if l.RequestedAt.IsZero() {
			l.RequestedAt = time.Now()
		}
		docs = append(docs, l)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}
