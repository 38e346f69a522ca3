package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"takt/internal/model"
)

// TaskRepository handles CRUD for tasks and recurrence exception writes.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListAll returns every stored task: backlog entries, placed tasks and
// recurring templates. Expansion needs the full collection because templates
// carry no scheduled date of their own.
func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// WriteException records a single-occurrence override or deletion on a
// recurring template. The template itself stays untouched apart from the
// exceptions map.
func (r *TaskRepository) WriteException(ctx context.Context, templateID, date string, exc model.Exception) error {
	task, err := r.FindByID(ctx, templateID)
	if err != nil {
		return fmt.Errorf("find template: %w", err)
	}
	if !task.IsRecurring() {
		return fmt.Errorf("task %s is not recurring", templateID)
	}
	if task.Recurrence.Exceptions == nil {
		task.Recurrence.Exceptions = make(map[string]model.Exception)
	}
	task.Recurrence.Exceptions[date] = exc
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("write exception: %w", err)
	}
	return nil
}
