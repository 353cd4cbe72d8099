// Package mongostore implements the repository interfaces on MongoDB.
// References between documents are stored as string identifiers and are
// expanded with one batched query per referenced collection.
package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/workviyo/taskboard-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	CollectionUsers    = "users"
	CollectionMembers  = "members"
	CollectionTeams    = "teams"
	CollectionProjects = "projects"
	CollectionTags     = "tags"
	CollectionTasks    = "tasks"
)

// NewRepositories builds the repository set backed by db.
func NewRepositories(db *mongo.Database) *repository.Repositories {
	members := &MemberRepository{coll: db.Collection(CollectionMembers)}
	users := &UserRepository{coll: db.Collection(CollectionUsers)}
	teams := &TeamRepository{coll: db.Collection(CollectionTeams), members: members}
	projects := &ProjectRepository{coll: db.Collection(CollectionProjects)}
	tags := &TagRepository{coll: db.Collection(CollectionTags)}

	return &repository.Repositories{
		Users:    users,
		Members:  members,
		Teams:    teams,
		Projects: projects,
		Tags:     tags,
		Tasks: &TaskRepository{
			coll:     db.Collection(CollectionTasks),
			users:    users,
			teams:    teams,
			projects: projects,
			tags:     tags,
		},
		Reports: &ReportRepository{coll: db.Collection(CollectionTasks)},
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return err
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any) (*T, error) {
	var doc T
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func byID(id string) bson.M {
	return bson.M{"_id": id}
}

func inIDs(ids []string) bson.M {
	return bson.M{"_id": bson.M{"$in": ids}}
}

func sortBy(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: 1}})
}

// now is truncated to milliseconds, the precision MongoDB stores.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
