package service

import (
	"context"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// TaskService coordinates task operations scoped to the owning user. Every
// read, update or delete passes the ownership guard: a task owned by someone
// else is indistinguishable from a missing one.
type TaskService interface {
	Create(ctx context.Context, ownerID, title, description string, status domain.TaskStatus) (*domain.Task, error)
	List(ctx context.Context, ownerID string) ([]domain.Task, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id, title, description string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ownerID, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewError(domain.KindValidation, "Title is required")
	}
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !domain.ValidTaskStatus(status) {
		return nil, domain.NewError(domain.KindValidation, "Invalid task status")
	}

	task := &domain.Task{
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      status,
		OwnerID:     ownerID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *taskService) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return s.getOwned(ctx, ownerID, id)
}

// Update replaces a field only when the caller supplies a non-empty value.
func (s *taskService) Update(ctx context.Context, ownerID, id, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	task, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(title); v != "" {
		task.Title = v
	}
	if v := strings.TrimSpace(description); v != "" {
		task.Description = v
	}
	if status != "" {
		if !domain.ValidTaskStatus(status) {
			return nil, domain.NewError(domain.KindValidation, "Invalid task status")
		}
		task.Status = status
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) getOwned(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domain.NewError(domain.KindNotFound, "Task not found")
	}
	return task, nil
}
