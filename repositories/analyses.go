package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"press-lens/db"
	"press-lens/models"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

type AnalysisRepository struct {
	col *mongo.Collection
}

func NewAnalysisRepository(database *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{col: database.Collection(db.AnalysesCollection)}
}

// InsertPending stores a new pending record.
func (r *AnalysisRepository) InsertPending(ctx context.Context, rec *models.AnalysisRecord) error {
	now := time.Now()
	rec.Status = models.AnalysisPending
	rec.CreatedAt = now
	rec.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return nil
}

func (r *AnalysisRepository) FindByJobID(ctx context.Context, jobID string) (*models.AnalysisRecord, error) {
	var rec models.AnalysisRecord
	if err := r.col.FindOne(ctx, bson.M{"job_id": jobID}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// MarkCompleted sets the result and status=completed.
func (r *AnalysisRepository) MarkCompleted(ctx context.Context, jobID string, result *models.PressReleaseAnalysisResponse) error {
	return r.update(ctx, jobID, bson.M{
		"status":     models.AnalysisCompleted,
		"result":     result,
		"error":      nil,
		"updated_at": time.Now(),
	})
}

// MarkFailed sets the error detail and status=failed.
func (r *AnalysisRepository) MarkFailed(ctx context.Context, jobID string, detail models.ErrorDetail) error {
	return r.update(ctx, jobID, bson.M{
		"status":     models.AnalysisFailed,
		"error":      detail,
		"updated_at": time.Now(),
	})
}

// MarkPublished 는 결과 이벤트 발행을 기록한다.
func (r *AnalysisRepository) MarkPublished(ctx context.Context, jobID string) error {
	return r.update(ctx, jobID, bson.M{
		"result_published": true,
		"updated_at":       time.Now(),
	})
}

// ListPendingBefore 는 created_at 이 before 이전인 pending 작업을 오래된 순으로 반환한다.
func (r *AnalysisRepository) ListPendingBefore(ctx context.Context, before time.Time, limit int64) ([]models.AnalysisRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetLimit(limit)
	cur, err := r.col.Find(ctx, bson.M{
		"status":     models.AnalysisPending,
		"created_at": bson.M{"$lt": before},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AnalysisRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalysisRepository) update(ctx context.Context, jobID string, set bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"job_id": jobID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}
