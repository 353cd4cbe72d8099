package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workviyo/taskboard-api/internal/dto"
	"github.com/workviyo/taskboard-api/internal/models"
)

var reportNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

func TestReportService_LastWeek(t *testing.T) {
	_, repos := openTestDB(t)
	owner := seedUser(t, repos, "Rani Kawale")
	team := seedTeam(t, repos, "Platform")
	project := seedProject(t, repos, "Task Board")

	completedAt := func(name string, status models.TaskStatus, at time.Time) {
		seedTask(t, repos, models.Task{
			Name: name, ProjectID: project.ID, TeamID: team.ID, OwnerIDs: []string{owner.ID},
			Status: status, CreatedAt: at.Add(-time.Hour), UpdatedAt: at,
		})
	}
	completedAt("yesterday-1", models.TaskStatusCompleted, reportNow.Add(-24*time.Hour))
	completedAt("yesterday-2", models.TaskStatusCompleted, reportNow.Add(-23*time.Hour))
	completedAt("five-days", models.TaskStatusCompleted, reportNow.Add(-5*24*time.Hour))
	completedAt("too-old", models.TaskStatusCompleted, reportNow.Add(-8*24*time.Hour))
	completedAt("still-open", models.TaskStatusInProgress, reportNow.Add(-time.Hour))
	completedAt("clock-skewed", models.TaskStatusCompleted, reportNow.Add(2*time.Hour))

	service := NewReportService(repos)
	service.now = func() time.Time { return reportNow }

	rows, err := service.LastWeek(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.DayCountDTO{
		{Date: "05-03-2024", Count: 1},
		{Date: "09-03-2024", Count: 2},
	}, rows)
}

func TestReportService_LastWeekEmpty(t *testing.T) {
	_, repos := openTestDB(t)
	service := NewReportService(repos)

	rows, err := service.LastWeek(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestReportService_PendingPartitionsWithCompleted(t *testing.T) {
	_, repos := openTestDB(t)
	owner := seedUser(t, repos, "Rani Kawale")
	team := seedTeam(t, repos, "Platform")
	project := seedProject(t, repos, "Task Board")

	statuses := []models.TaskStatus{
		models.TaskStatusTodo,
		models.TaskStatusInProgress,
		models.TaskStatusCompleted,
		models.TaskStatusBlocked,
		models.TaskStatusCompleted,
	}
	for i, status := range statuses {
		seedTask(t, repos, models.Task{
			Name: string(status), ProjectID: project.ID, TeamID: team.ID,
			OwnerIDs: []string{owner.ID}, Status: status, TimeToComplete: float64(i),
		})
	}

	service := NewReportService(repos)
	pending, err := service.Pending(context.Background())
	require.NoError(t, err)

	closed, err := service.ClosedTasks(context.Background())
	require.NoError(t, err)
	var completed int64
	for _, row := range closed.ByProject {
		completed += row.Count
	}

	assert.Len(t, pending, 3)
	assert.Equal(t, int64(2), completed)
	assert.Equal(t, len(statuses), len(pending)+int(completed))
	for _, row := range pending {
		assert.NotEqual(t, string(models.TaskStatusCompleted), row.Name)
	}
	assert.Contains(t, pending, dto.PendingTaskDTO{Name: "Blocked", TimeToComplete: 3})
}

func TestReportService_ClosedTasksFansOutOwners(t *testing.T) {
	db, repos := openTestDB(t)
	rani := seedUser(t, repos, "Rani Kawale")
	amit := seedUser(t, repos, "Amit Shah")
	gone := seedUser(t, repos, "Former Employee")
	platform := seedTeam(t, repos, "Platform")
	mobile := seedTeam(t, repos, "Mobile")
	project := seedProject(t, repos, "Task Board")

	seedTask(t, repos, models.Task{
		Name: "pair", ProjectID: project.ID, TeamID: platform.ID,
		OwnerIDs: []string{rani.ID, amit.ID}, Status: models.TaskStatusCompleted,
	})
	seedTask(t, repos, models.Task{
		Name: "solo", ProjectID: project.ID, TeamID: mobile.ID,
		OwnerIDs: []string{rani.ID}, Status: models.TaskStatusCompleted,
	})
	seedTask(t, repos, models.Task{
		Name: "trio", ProjectID: project.ID, TeamID: platform.ID,
		OwnerIDs: []string{rani.ID, amit.ID, gone.ID}, Status: models.TaskStatusCompleted,
	})
	seedTask(t, repos, models.Task{
		Name: "open", ProjectID: project.ID, TeamID: mobile.ID,
		OwnerIDs: []string{amit.ID}, Status: models.TaskStatusTodo,
	})
	require.NoError(t, db.Delete(&models.User{}, "id = ?", gone.ID).Error)

	report, err := NewReportService(repos).ClosedTasks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []dto.GroupCountDTO{
		{Name: "Rani Kawale", Count: 3},
		{Name: "Amit Shah", Count: 2},
		{Name: gone.ID, Count: 1},
	}, report.ByOwners)
	assert.Equal(t, []dto.GroupCountDTO{
		{Name: "Platform", Count: 2},
		{Name: "Mobile", Count: 1},
	}, report.ByTeam)
	assert.Equal(t, []dto.GroupCountDTO{{Name: "Task Board", Count: 3}}, report.ByProject)

	var ownerSlots int64
	for _, row := range report.ByOwners {
		ownerSlots += row.Count
	}
	assert.Equal(t, int64(2+1+3), ownerSlots)
}

func TestReportService_ClosedTasksEmpty(t *testing.T) {
	_, repos := openTestDB(t)

	report, err := NewReportService(repos).ClosedTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.ByOwners)
	assert.Empty(t, report.ByTeam)
	assert.Empty(t, report.ByProject)
}
