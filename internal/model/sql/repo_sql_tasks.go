package sql

import (
	"context"
	"fmt"

	"interntrack/internal/entity"
)

// CreateTask inserts a new task entry. A duplicate (owner, date) pair
// surfaces as gorm.ErrDuplicatedKey via the composite unique index.
func (r *GormRepository) CreateTask(ctx context.Context, task *entity.DbTask) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if task == nil {
		return fmt.Errorf("task is nil")
	}
	return r.db.WithContext(ctx).Create(task).Error
}

// GetTaskByID loads a task by ID.
func (r *GormRepository) GetTaskByID(ctx context.Context, id uint) (*entity.DbTask, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid task id")
	}
	var task entity.DbTask
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies the provided field updates to an existing task.
func (r *GormRepository) UpdateTask(ctx context.Context, id uint, updates entity.TaskUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid task id")
	}
	fields := updates.ToMap()
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.DbTask{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteTask removes a task by ID. Deleting an absent row is not an error.
func (r *GormRepository) DeleteTask(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid task id")
	}
	return r.db.WithContext(ctx).Delete(&entity.DbTask{}, id).Error
}

// ListTasksByOwner returns the owner's tasks ordered by date ascending.
func (r *GormRepository) ListTasksByOwner(ctx context.Context, ownerID uint) ([]entity.DbTask, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if ownerID == 0 {
		return nil, fmt.Errorf("invalid owner id")
	}
	var tasks []entity.DbTask
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
