package mongostore

import (
	"context"

	"github.com/google/uuid"
	"github.com/workviyo/taskboard-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProjectRepository struct {
	coll *mongo.Collection
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = models.TaskStatusTodo
	}
	project.CreatedAt = now()
	_, err := r.coll.InsertOne(ctx, project)
	return translate(err)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	return findOne[models.Project](ctx, r.coll, byID(id))
}

func (r *ProjectRepository) FindByName(ctx context.Context, name string) (*models.Project, error) {
	return findOne[models.Project](ctx, r.coll, bson.M{"name": name})
}

func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	return findAll[models.Project](ctx, r.coll, inIDs(ids))
}

func (r *ProjectRepository) List(ctx context.Context, name string) ([]models.Project, error) {
	filter := bson.M{}
	if name != "" {
		filter["name"] = name
	}
	return findAll[models.Project](ctx, r.coll, filter, sortBy("createdAt"))
}

type TagRepository struct {
	coll *mongo.Collection
}

func (r *TagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.NewString()
	}
	tag.CreatedAt = now()
	tag.UpdatedAt = tag.CreatedAt
	_, err := r.coll.InsertOne(ctx, tag)
	return translate(err)
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	return findOne[models.Tag](ctx, r.coll, bson.M{"name": name})
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	return findAll[models.Tag](ctx, r.coll, inIDs(ids))
}

func (r *TagRepository) FindByNames(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}
	return findAll[models.Tag](ctx, r.coll, bson.M{"name": bson.M{"$in": names}})
}

func (r *TagRepository) List(ctx context.Context) ([]models.Tag, error) {
	return findAll[models.Tag](ctx, r.coll, bson.M{}, sortBy("name"))
}
