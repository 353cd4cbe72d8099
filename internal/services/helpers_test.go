package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workviyo/taskboard-api/internal/database"
	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) (*gorm.DB, *repository.Repositories) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:", logger.Default.LogMode(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db, repository.NewGormRepositories(db)
}

func seedUser(t *testing.T, repos *repository.Repositories, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", PasswordHash: "hashed"}
	require.NoError(t, repos.Users.Create(context.Background(), user))
	return user
}

func seedTeam(t *testing.T, repos *repository.Repositories, name string) *models.Team {
	t.Helper()
	team := &models.Team{Name: name}
	require.NoError(t, repos.Teams.Create(context.Background(), team))
	return team
}

func seedProject(t *testing.T, repos *repository.Repositories, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Status: models.TaskStatusTodo}
	require.NoError(t, repos.Projects.Create(context.Background(), project))
	return project
}

func seedTag(t *testing.T, repos *repository.Repositories, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, repos.Tags.Create(context.Background(), tag))
	return tag
}

func seedTask(t *testing.T, repos *repository.Repositories, task models.Task) *models.Task {
	t.Helper()
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if task.Status == "" {
		task.Status = models.TaskStatusTodo
	}
	require.NoError(t, repos.Tasks.Create(context.Background(), &task))
	return &task
}

func taskNames(tasks []models.Task) []string {
	names := make([]string, len(tasks))
	for i, task := range tasks {
		names[i] = task.Name
	}
	return names
}
