package database

import (
	"context"
	"fmt"
	"log"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository/mongostore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// Migrate registers the explicit join tables and migrates every model.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	joinTables := []struct {
		model     interface{}
		field     string
		joinTable interface{}
	}{
		{&models.Task{}, "Owners", &models.TaskOwner{}},
		{&models.Task{}, "Tags", &models.TaskTag{}},
		{&models.Team{}, "Members", &models.TeamMember{}},
	}
	for _, jt := range joinTables {
		if err := db.SetupJoinTable(jt.model, jt.field, jt.joinTable); err != nil {
			return fmt.Errorf("failed to set up join table for %s: %w", jt.field, err)
		}
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Team{},
		&models.TeamMember{},
		&models.Project{},
		&models.Tag{},
		&models.Task{},
		&models.TaskOwner{},
		&models.TaskTag{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// EnsureIndexes creates the MongoDB indexes backing unique names and the
// task facets used by filters and reports.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		keys       bson.D
		unique     bool
	}{
		{mongostore.CollectionUsers, bson.D{{Key: "email", Value: 1}}, true},
		{mongostore.CollectionUsers, bson.D{{Key: "name", Value: 1}}, false},
		{mongostore.CollectionTeams, bson.D{{Key: "name", Value: 1}}, true},
		{mongostore.CollectionProjects, bson.D{{Key: "name", Value: 1}}, true},
		{mongostore.CollectionTags, bson.D{{Key: "name", Value: 1}}, true},
		{mongostore.CollectionTasks, bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}}, false},
		{mongostore.CollectionTasks, bson.D{{Key: "owners", Value: 1}}, false},
		{mongostore.CollectionTasks, bson.D{{Key: "team", Value: 1}}, false},
		{mongostore.CollectionTasks, bson.D{{Key: "project", Value: 1}}, false},
	}

	for _, idx := range indexes {
		model := mongo.IndexModel{
			Keys:    idx.keys,
			Options: options.Index().SetUnique(idx.unique),
		}
		name, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.collection, err)
		}
		log.Printf("Ensured index %s on %s", name, idx.collection)
	}
	return nil
}
