package mongostore

import (
	"fmt"
	"time"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
	"github.com/workviyo/taskboard-api/internal/taskquery"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Day keys are produced by $dateToString with dayFormat and parsed back with
// dayLayout.
const (
	dayFormat = "%Y-%m-%d"
	dayLayout = "2006-01-02"
)

var completed = string(models.TaskStatusCompleted)

// TaskFilterDocument converts a task filter into a find filter. The caller
// must not query with a filter whose NoMatch flag is set.
func TaskFilterDocument(f taskquery.Filter) bson.D {
	doc := bson.D{}
	if f.OwnerIDs != nil {
		doc = append(doc, bson.E{Key: "owners", Value: bson.D{{Key: "$in", Value: f.OwnerIDs}}})
	}
	if f.TagIDs != nil {
		doc = append(doc, bson.E{Key: "tags", Value: bson.D{{Key: "$in", Value: f.TagIDs}}})
	}
	if f.TeamID != nil {
		doc = append(doc, bson.E{Key: "team", Value: *f.TeamID})
	}
	if f.ProjectID != nil {
		doc = append(doc, bson.E{Key: "project", Value: *f.ProjectID})
	}
	if f.Status != nil {
		doc = append(doc, bson.E{Key: "status", Value: string(*f.Status)})
	}
	return doc
}

// CompletedByDayPipeline counts tasks completed within [since, until] per UTC
// day of their last update.
func CompletedByDayPipeline(since, until time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "status", Value: completed},
			{Key: "updatedAt", Value: bson.D{{Key: "$gte", Value: since}, {Key: "$lte", Value: until}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: dayFormat},
				{Key: "date", Value: "$updatedAt"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// PendingPipeline keeps name and time to complete of unfinished tasks.
func PendingPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: bson.D{{Key: "$ne", Value: completed}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "name", Value: 1},
			{Key: "timeToComplete", Value: 1},
		}}},
	}
}

// CompletedCountPipeline groups completed tasks by project, team or owner.
// The owner breakdown unwinds the owners array first, so a task counts once
// per owner.
func CompletedCountPipeline(field repository.GroupField) (mongo.Pipeline, error) {
	var key string
	switch field {
	case repository.GroupByProject:
		key = "project"
	case repository.GroupByTeam:
		key = "team"
	case repository.GroupByOwner:
		key = "owners"
	default:
		return nil, fmt.Errorf("unsupported group field %q", field)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: completed}}}},
	}
	if field == repository.GroupByOwner {
		pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: "$owners"}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$" + key},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}})
	return pipeline, nil
}
