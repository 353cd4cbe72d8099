package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/workviyo/taskboard-api/internal/repository"
	"github.com/workviyo/taskboard-api/internal/taskquery"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReportRepository struct {
	coll *mongo.Collection
}

type groupDoc struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

type pendingDoc struct {
	Name           string  `bson:"name"`
	TimeToComplete float64 `bson:"timeToComplete"`
}

func (r *ReportRepository) CompletedByDay(ctx context.Context, since, until time.Time) ([]taskquery.DayCount, error) {
	rows, err := aggregate[groupDoc](ctx, r.coll, CompletedByDayPipeline(since, until))
	if err != nil {
		return nil, err
	}

	days := make([]taskquery.DayCount, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse(dayLayout, row.Key)
		if err != nil {
			return nil, fmt.Errorf("unexpected day key %q: %w", row.Key, err)
		}
		days = append(days, taskquery.DayCount{Day: day, Count: row.Count})
	}
	return days, nil
}

func (r *ReportRepository) Pending(ctx context.Context) ([]repository.PendingItem, error) {
	rows, err := aggregate[pendingDoc](ctx, r.coll, PendingPipeline())
	if err != nil {
		return nil, err
	}

	items := make([]repository.PendingItem, len(rows))
	for i, row := range rows {
		items[i] = repository.PendingItem{Name: row.Name, TimeToComplete: row.TimeToComplete}
	}
	return items, nil
}

func (r *ReportRepository) CompletedCountBy(ctx context.Context, field repository.GroupField) ([]repository.GroupCount, error) {
	pipeline, err := CompletedCountPipeline(field)
	if err != nil {
		return nil, err
	}
	rows, err := aggregate[groupDoc](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}

	counts := make([]repository.GroupCount, len(rows))
	for i, row := range rows {
		counts[i] = repository.GroupCount{Key: row.Key, Count: row.Count}
	}
	return counts, nil
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
