package mongostore

import (
	"context"

	"github.com/google/uuid"
	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TeamRepository struct {
	coll    *mongo.Collection
	members *MemberRepository
}

func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	team.MemberIDs = orEmpty(team.MemberIDs)
	_, err := r.coll.InsertOne(ctx, team)
	return translate(err)
}

func (r *TeamRepository) FindByID(ctx context.Context, id string) (*models.Team, error) {
	team, err := findOne[models.Team](ctx, r.coll, byID(id))
	if err != nil {
		return nil, err
	}
	teams := []models.Team{*team}
	if err := r.expandMembers(ctx, teams); err != nil {
		return nil, err
	}
	return &teams[0], nil
}

func (r *TeamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	return findOne[models.Team](ctx, r.coll, bson.M{"name": name})
}

func (r *TeamRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}
	return findAll[models.Team](ctx, r.coll, inIDs(ids))
}

func (r *TeamRepository) List(ctx context.Context) ([]models.Team, error) {
	teams, err := findAll[models.Team](ctx, r.coll, bson.M{}, sortBy("name"))
	if err != nil {
		return nil, err
	}
	if err := r.expandMembers(ctx, teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, memberID string) error {
	result, err := r.coll.UpdateOne(ctx, byID(teamID), bson.M{
		"$addToSet": bson.M{"members": memberID},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) expandMembers(ctx context.Context, teams []models.Team) error {
	var ids []string
	for _, team := range teams {
		ids = append(ids, team.MemberIDs...)
	}
	members, err := r.members.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	index := make(map[string]models.Member, len(members))
	for _, m := range members {
		index[m.ID] = m
	}

	for i := range teams {
		teams[i].Members = make([]models.Member, 0, len(teams[i].MemberIDs))
		for _, id := range teams[i].MemberIDs {
			if m, ok := index[id]; ok {
				teams[i].Members = append(teams[i].Members, m)
			}
		}
	}
	return nil
}
