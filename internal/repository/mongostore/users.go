package mongostore

import (
	"context"

	"github.com/google/uuid"
	"github.com/workviyo/taskboard-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	coll *mongo.Collection
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.coll.InsertOne(ctx, user)
	return translate(err)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, byID(id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"email": email})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return findAll[models.User](ctx, r.coll, inIDs(ids))
}

func (r *UserRepository) FindByNames(ctx context.Context, names []string) ([]models.User, error) {
	if len(names) == 0 {
		return []models.User{}, nil
	}
	return findAll[models.User](ctx, r.coll, bson.M{"name": bson.M{"$in": names}})
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, r.coll, bson.M{}, sortBy("createdAt"))
}

type MemberRepository struct {
	coll *mongo.Collection
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	_, err := r.coll.InsertOne(ctx, member)
	return err
}

func (r *MemberRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Member, error) {
	if len(ids) == 0 {
		return []models.Member{}, nil
	}
	return findAll[models.Member](ctx, r.coll, inIDs(ids))
}

func (r *MemberRepository) List(ctx context.Context) ([]models.Member, error) {
	return findAll[models.Member](ctx, r.coll, bson.M{}, sortBy("name"))
}
