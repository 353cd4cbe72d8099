package repository

import (
	"context"

	"github.com/workviyo/taskboard-api/internal/models"
	"github.com/workviyo/taskboard-api/internal/taskquery"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task with its owner and tag links
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return createLinks(tx, task.ID, task.OwnerIDs, task.TagIDs)
	})
}

// FindByID finds a task by ID with relations expanded
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.expanded(ctx).First(&task, "tasks.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	tasks := []models.Task{task}
	if err := loadRefs(r.db.WithContext(ctx), tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// Find retrieves the tasks matching filter
func (r *GormTaskRepository) Find(ctx context.Context, filter taskquery.Filter) ([]models.Task, error) {
	tasks := []models.Task{}
	if filter.NoMatch {
		return tasks, nil
	}

	query := r.expanded(ctx).Model(&models.Task{})

	if filter.OwnerIDs != nil {
		ownerSubQuery := r.db.Model(&models.TaskOwner{}).
			Select("1").
			Where("task_owners.task_id = tasks.id").
			Where("task_owners.user_id IN ?", filter.OwnerIDs)
		query = query.Where("EXISTS (?)", ownerSubQuery)
	}
	if filter.TagIDs != nil {
		tagSubQuery := r.db.Model(&models.TaskTag{}).
			Select("1").
			Where("task_tags.task_id = tasks.id").
			Where("task_tags.tag_id IN ?", filter.TagIDs)
		query = query.Where("EXISTS (?)", tagSubQuery)
	}
	if filter.TeamID != nil {
		query = query.Where("tasks.team_id = ?", *filter.TeamID)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	if err := query.Order("tasks.created_at ASC").Order("tasks.id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	if err := loadRefs(r.db.WithContext(ctx), tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves scalar fields and replaces the owner and tag links
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskOwner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		return createLinks(tx, task.ID, task.OwnerIDs, task.TagIDs)
	})
}

// AddOwners links additional owners to a task after its current owners
func (r *GormTaskRepository) AddOwners(ctx context.Context, taskID string, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&models.TaskOwner{}).
			Where("task_id = ?", taskID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error
		if err != nil {
			return err
		}

		links := make([]models.TaskOwner, len(userIDs))
		for i, userID := range userIDs {
			links[i] = models.TaskOwner{TaskID: taskID, UserID: userID, Position: last + 1 + i}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
		// Touch the task so updatedAt reflects the ownership change.
		return tx.Model(&models.Task{}).Where("id = ?", taskID).Update("updated_at", tx.NowFunc()).Error
	})
}

// Delete removes a task and its links
func (r *GormTaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskOwner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *GormTaskRepository) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Project").
		Preload("Team").
		Preload("Owners").
		Preload("Tags")
}

func createLinks(tx *gorm.DB, taskID string, ownerIDs, tagIDs []string) error {
	if len(ownerIDs) > 0 {
		owners := make([]models.TaskOwner, len(ownerIDs))
		for i, userID := range ownerIDs {
			owners[i] = models.TaskOwner{TaskID: taskID, UserID: userID, Position: i}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&owners).Error; err != nil {
			return err
		}
	}
	if len(tagIDs) > 0 {
		tags := make([]models.TaskTag, len(tagIDs))
		for i, tagID := range tagIDs {
			tags[i] = models.TaskTag{TaskID: taskID, TagID: tagID, Position: i}
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadRefs fills the stored reference lists from the link tables in
// position order and arranges the preloaded relations to match.
func loadRefs(db *gorm.DB, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	var owners []models.TaskOwner
	if err := db.Where("task_id IN ?", ids).Order("position ASC").Find(&owners).Error; err != nil {
		return err
	}
	var tags []models.TaskTag
	if err := db.Where("task_id IN ?", ids).Order("position ASC").Find(&tags).Error; err != nil {
		return err
	}

	ownerIDs := make(map[string][]string, len(tasks))
	for _, link := range owners {
		ownerIDs[link.TaskID] = append(ownerIDs[link.TaskID], link.UserID)
	}
	tagIDs := make(map[string][]string, len(tasks))
	for _, link := range tags {
		tagIDs[link.TaskID] = append(tagIDs[link.TaskID], link.TagID)
	}

	for i := range tasks {
		t := &tasks[i]
		t.OwnerIDs = append([]string{}, ownerIDs[t.ID]...)
		t.TagIDs = append([]string{}, tagIDs[t.ID]...)
		t.Owners = arrange(t.Owners, t.OwnerIDs, func(u models.User) string { return u.ID })
		t.Tags = arrange(t.Tags, t.TagIDs, func(tag models.Tag) string { return tag.ID })
	}
	return nil
}

// arrange orders items by ids. Items whose key is not in ids are dropped.
func arrange[T any](items []T, ids []string, key func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
