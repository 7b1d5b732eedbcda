package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickit/print-system/internal/core/domain"
)

const collectionHistory = "job_history"

// HistoryRepository is the append-only archive of collected jobs. The only
// removal is the compensating Remove; there is no update operation.
type HistoryRepository struct {
	col *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{col: db.Collection(collectionHistory)}
}

type historyDoc struct {
	Job        domain.PrintJob `bson:"job"`
	ArchivedAt time.Time       `bson:"archived_at"`
}

// Append archives one collected job.
func (r *HistoryRepository) Append(ctx context.Context, job *domain.PrintJob) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, historyDoc{Job: *job, ArchivedAt: time.Now().UTC()})
	return err
}

// Remove backs out the archive entry for jobID. Used only to compensate a
// failed active-slot clear; nothing else deletes from this collection.
func (r *HistoryRepository) Remove(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"job._id": jobID})
	return err
}

// List returns archived jobs most recent first.
func (r *HistoryRepository) List(ctx context.Context, shopID string) ([]*domain.PrintJob, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if shopID != "" {
		filter["job.shop_id"] = shopID
	}

	opts := options.Find().SetSort(bson.D{{Key: "archived_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []*domain.PrintJob
	for cur.Next(ctx) {
		var doc historyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		job := doc.Job
		jobs = append(jobs, &job)
	}
	return jobs, cur.Err()
}

// EnsureIndexes creates necessary indexes on the history collection.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "job.shop_id", Value: 1}, {Key: "archived_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
