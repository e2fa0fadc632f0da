package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RecommendationLogRepo interface {
	Create(ctx context.Context, entry *RecommendationLog) error
	ListByUser(ctx context.Context, userID uint64, limit int64) ([]*RecommendationLog, error)
}

type recommendationLogRepoImpl struct {
	col *mongo.Collection
}

func NewRecommendationLogRepo(db *mongo.Database) RecommendationLogRepo {
	return &recommendationLogRepoImpl{
		col: db.Collection(RecommendationLogCollection),
	}
}

func (s *recommendationLogRepoImpl) Create(ctx context.Context, entry *RecommendationLog) error {
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// ListByUser 按时间倒序获取用户最近的推荐记录
func (s *recommendationLogRepoImpl) ListByUser(ctx context.Context, userID uint64, limit int64) ([]*RecommendationLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*RecommendationLog, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}
