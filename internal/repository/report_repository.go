package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/taskquery"
	"gorm.io/gorm"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// CompletedByDay buckets completion timestamps in Go; date truncation SQL
// differs between MySQL, PostgreSQL and SQLite.
func (r *GormReportRepository) CompletedByDay(ctx context.Context, since, until time.Time) ([]taskquery.DayCount, error) {
	var stamps []time.Time
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("status = ? AND updated_at >= ? AND updated_at <= ?", models.TaskStatusCompleted, since, until).
		Pluck("updated_at", &stamps).Error
	if err != nil {
		return nil, err
	}
	return taskquery.CountByDay(stamps), nil
}

// Pending projects name and time to complete of unfinished tasks
func (r *GormReportRepository) Pending(ctx context.Context) ([]PendingItem, error) {
	items := []PendingItem{}
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("name", "time_to_complete").
		Where("status <> ?", models.TaskStatusCompleted).
		Order("created_at ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

type groupRow struct {
	GroupKey string
	Total    int64
}

// CompletedCountBy groups completed tasks by project, team or owner
func (r *GormReportRepository) CompletedCountBy(ctx context.Context, field GroupField) ([]GroupCount, error) {
	var rows []groupRow
	db := r.db.WithContext(ctx)

	var query *gorm.DB
	switch field {
	case GroupByProject:
		query = db.Model(&models.Task{}).
			Select("project_id AS group_key, COUNT(*) AS total").
			Where("status = ?", models.TaskStatusCompleted).
			Group("project_id")
	case GroupByTeam:
		query = db.Model(&models.Task{}).
			Select("team_id AS group_key, COUNT(*) AS total").
			Where("status = ?", models.TaskStatusCompleted).
			Group("team_id")
	case GroupByOwner:
		query = db.Model(&models.TaskOwner{}).
			Select("task_owners.user_id AS group_key, COUNT(*) AS total").
			Joins("JOIN tasks ON tasks.id = task_owners.task_id").
			Where("tasks.status = ?", models.TaskStatusCompleted).
			Group("task_owners.user_id")
	default:
		return nil, fmt.Errorf("unsupported group field %q", field)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]GroupCount, len(rows))
	for i, row := range rows {
		counts[i] = GroupCount{Key: row.GroupKey, Count: row.Total}
	}
	return counts, nil
}
